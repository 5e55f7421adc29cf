package comment

// SubmitCommentRequest is the guestbook form payload. Website is the
// honeypot field: humans never see it, bots fill it. DwellMS is how long the
// form was on screen before submission.
type SubmitCommentRequest struct {
	DeviceID   string `json:"device_id"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
	Website    string `json:"website"`
	DwellMS    int64  `json:"dwell_ms"`
}
