// Package gate implements the route access policy for the chat app.
//
// The policy has exactly four cells: an unauthenticated visitor on a
// normal page is sent to the sign-in page, an authenticated visitor on a
// restricted page (sign-in, sign-up) is sent home, and the other two
// combinations pass through. Decide is the pure policy; Middleware binds
// it to gin using a session validator and the request cookie.
package gate
