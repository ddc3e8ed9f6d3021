// Package httpapi exposes the sync backend over HTTP with fiber:
//
//	POST /auth/signup  {email, password, name} -> {accessToken, userId}
//	POST /auth/login   {email, password}       -> {accessToken, userId}
//	POST /data/save    snapshot JSON (Bearer)  -> {ok: true}
//	GET  /data/load    (Bearer)                -> {data: snapshot | null}
//
// Every non-2xx response carries {error: message}.
package httpapi
