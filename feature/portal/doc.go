// Package portal is a local stand-in for the provider portal.
//
// It serves the same HTTP contract the network provider client speaks:
//
//	POST   /api/v1/token        client credentials -> {access_token, ttl}
//	POST   /api/v1/orders       {type} -> order
//	GET    /api/v1/orders       list
//	GET    /api/v1/order/{id}   order or 404
//	PATCH  /api/v1/order/{id}   {status}, advances an order
//	DELETE /api/v1/order/{id}   204 or 404
//
// Every route except the token exchange requires a bearer token issued by
// this server. Orders live in memory.
package portal
