package services

type PushCommand struct {
	Phone       string
	Amount      int64
	Reference   string
	Description string
}

type PushResult struct {
	CorrelationID     string
	PeerCorrelationID string
	CustomerMessage   string
}
