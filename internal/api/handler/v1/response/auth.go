package response

type LoginResponse struct {
	Token       string      `json:"token"`
	Participant Participant `json:"participant"`
}
