package agent

// Wire types for the agent service. The shapes mirror the service exactly and
// must not drift: the agent is an opaque text-in/text-out collaborator and
// these two endpoints are the whole contract.

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	// Message is the natural-language request text.
	Message string `json:"message"`

	// SessionID correlates multi-turn context server-side. Nil on the first
	// request of a surface; the service mints an id and returns it.
	SessionID *string `json:"session_id"`

	// Token is the auth token, or nil for anonymous use. Search and general
	// questions work anonymously; booking and dashboard require a token by
	// convention of the agent.
	Token *string `json:"token"`
}

// ChatResponse is the body of a successful POST /chat.
type ChatResponse struct {
	UserInput string `json:"user_input"`

	// Response is the agent's free-text reply.
	Response string `json:"response"`

	// SessionID is the conversation id, echoed or freshly minted. Adopt it
	// only if no id was held for the surface that sent the request.
	SessionID string `json:"session_id"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	Token      string `json:"token"`
	CustomerID int    `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`

	// Message is a greeting ("Welcome back, {name}!") shown after login.
	Message string `json:"message"`
}

// errorResponse is the service's non-2xx body. Detail is shown to the user
// verbatim for login rejections.
type errorResponse struct {
	Detail string `json:"detail"`
}
