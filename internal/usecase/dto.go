package usecase

// SubmitLeadRequest mirrors the JSON body the waitlist form posts. The
// optional fields are decoded untyped on purpose: a form extension sending
// the wrong type for utm metadata must degrade to "absent", not reject the
// signup. Email is type-checked explicitly in Execute.
type SubmitLeadRequest struct {
	Email       any `json:"email"`
	Product     any `json:"product"`
	Referrer    any `json:"referrer"`
	UTMSource   any `json:"utmSource"`
	UTMMedium   any `json:"utmMedium"`
	UTMCampaign any `json:"utmCampaign"`
}

type SubmitLeadOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
