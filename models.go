package main

import (
	"time"

	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/llm"
)

// WorkerConfig holds everything a queue worker needs to process requests.
type WorkerConfig struct {
	DB *database.Queries
	// Store downloads CVs referenced by ObjectKey. Nil disables CV requests.
	Store     objectStore
	LLM       llm.Client
	DataDir   string
	RabbitURL string
	Queue     string
	Exchange  string
}

// AnalysisRequest is the message body consumed from the request queue.
type AnalysisRequest struct {
	ID             string `json:"id"`
	Profile        string `json:"profile,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	JobDescription string `json:"job_description"`
	// ObjectKey points at a CV in object storage. When set the CV's
	// technologies replace the profile's skills.
	ObjectKey string `json:"object_key,omitempty"`
}

// StatusUpdate is published to the updates exchange with routing key
// request.<id>.
type StatusUpdate struct {
	RequestID       string    `json:"request_id"`
	Status          string    `json:"status"`
	Message         string    `json:"message"`
	AnalysisID      string    `json:"analysis_id,omitempty"`
	MatchPercentage *float64  `json:"match_percentage,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
