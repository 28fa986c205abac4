package models

// ExecutionRequest is the body of POST/PUT /api/execution.
type ExecutionRequest struct {
	Execution Execution `json:"execution"`
}

// TweetRequest is the body of POST /api/tweet.
type TweetRequest struct {
	Topic string `json:"topic"`
}

// LoginCallbackRequest is the body of POST /api/user/login/callback.
type LoginCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}
