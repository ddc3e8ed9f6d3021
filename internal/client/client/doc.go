// Package client talks to the remote sync backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the sync orchestrator:
// Signup, Login, SaveData and LoadData. HTTPClient implements it as JSON over
// HTTP against one base URL:
//
//	POST /auth/signup  {email, password, name}   -> {accessToken, userId}
//	POST /auth/login   {email, password}         -> {accessToken, userId}
//	POST /data/save    bearer, body = snapshot   -> {ok}
//	GET  /data/load    bearer                    -> {data: snapshot|null}
//
// # Error Handling
//
// Non-2xx auth responses become *AuthError, non-2xx data responses become
// *SyncError; both carry the server's {error} message. Transport failures
// wrap ErrUnavailable. Callers match with errors.As / errors.Is.
//
// There is no retry, backoff or timeout policy here; the orchestrator owns
// failure handling and the http.Client owns timeouts.
package client
