package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/resumeascode/internal/analysis"
	"github.com/muhammadolammi/resumeascode/internal/convert"
	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/logger"
	"github.com/muhammadolammi/resumeascode/internal/resume"
	"github.com/muhammadolammi/resumeascode/internal/storage"
)

const (
	defaultQueue    = "analysis_requests"
	defaultExchange = "analysis_updates"
)

var (
	errMalformedRequest = errors.New("malformed analysis request")
	// errInterrupted means shutdown cut processing short. The request is
	// put back to pending and the message requeued.
	errInterrupted = errors.New("analysis interrupted by shutdown")
)

// dbRetry retries transient database writes.
func dbRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return !errors.Is(err, database.ErrNotFound) }),
	)
}

// decodeRequest parses a delivery body. Requests without an id cannot be
// tracked and are rejected.
func decodeRequest(body []byte) (AnalysisRequest, error) {
	var req AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return req, errors.Wrap(errMalformedRequest, err.Error())
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		return req, errors.Wrap(errMalformedRequest, "missing id")
	}
	return req, nil
}

// handleDelivery processes one message body. Malformed messages and
// shutdown interruptions return an error; processing failures are recorded
// on the request and announced.
func (cfg *WorkerConfig) handleDelivery(ctx context.Context, pub publisher, body []byte) error {
	req, err := decodeRequest(body)
	if err != nil {
		return err
	}
	log := logger.G(ctx).WithField("request_id", req.ID)
	ctx = logger.WithLogger(ctx, log)

	if err := dbRetry(ctx, func() error {
		return cfg.DB.CreateAnalysisRequest(ctx, database.CreateAnalysisRequestParams{
			ID:             req.ID,
			Profile:        req.Profile,
			JobTitle:       req.JobTitle,
			JobDescription: req.JobDescription,
			ObjectKey:      req.ObjectKey,
		})
	}); err != nil {
		if ctx.Err() != nil {
			return errInterrupted
		}
		log.WithError(err).Error("failed to record analysis request")
		cfg.fail(ctx, pub, req.ID, err)
		return nil
	}

	cfg.setStatus(ctx, req.ID, database.StatusProcessing, "")
	publishStatusUpdate(ctx, pub, cfg.Exchange, StatusUpdate{
		RequestID: req.ID,
		Status:    database.StatusProcessing,
		Message:   "analysis started",
		Timestamp: time.Now(),
	})

	a, err := cfg.processRequest(ctx, req)
	if err != nil && ctx.Err() != nil {
		log.WithError(err).Warn("analysis interrupted, returning request to the queue")
		cfg.setStatus(ctx, req.ID, database.StatusPending, "")
		return errInterrupted
	}
	if err != nil {
		log.WithError(err).Error("analysis request failed")
		cfg.fail(ctx, pub, req.ID, err)
		return nil
	}

	cfg.setStatus(ctx, req.ID, database.StatusCompleted, "")
	pct := a.MatchPercentage
	publishStatusUpdate(ctx, pub, cfg.Exchange, StatusUpdate{
		RequestID:       req.ID,
		Status:          database.StatusCompleted,
		Message:         "analysis completed",
		AnalysisID:      a.ID,
		MatchPercentage: &pct,
		Timestamp:       time.Now(),
	})
	log.WithField("analysis_id", a.ID).WithField("match_percentage", pct).Info("analysis request completed")
	return nil
}

// processRequest runs the job analysis and skill gap for req and stores the
// result.
func (cfg *WorkerConfig) processRequest(ctx context.Context, req AnalysisRequest) (database.Analysis, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return database.Analysis{}, errors.New("job description is empty")
	}
	skills, err := cfg.candidateSkills(ctx, req)
	if err != nil {
		return database.Analysis{}, err
	}

	job, err := analysis.AnalyzeJobDescription(ctx, cfg.LLM, req.JobDescription)
	if err != nil {
		return database.Analysis{}, err
	}
	gap := analysis.CompareSkills(skills, job.RequiredSkills, job.PreferredSkills)

	profile := req.Profile
	if profile == "" {
		profile = req.ObjectKey
	}
	var id string
	err = dbRetry(ctx, func() error {
		var err error
		id, err = recordAnalysis(ctx, cfg.DB, profile, req.JobTitle, job, gap, sql.NullString{String: req.ID, Valid: true})
		return err
	})
	if err != nil {
		return database.Analysis{}, errors.Wrap(err, "failed to save analysis")
	}
	return cfg.DB.GetAnalysis(ctx, id)
}

// candidateSkills returns the skills to compare against: the technologies
// of the CV at ObjectKey, or the profile's skills.
func (cfg *WorkerConfig) candidateSkills(ctx context.Context, req AnalysisRequest) ([]string, error) {
	if req.ObjectKey == "" {
		if req.Profile == "" {
			return nil, errors.New("request needs a profile or an object_key")
		}
		loader, err := resume.NewLoader(cfg.DataDir, req.Profile)
		if err != nil {
			return nil, err
		}
		skills, err := loader.LoadSkills()
		if err != nil {
			return nil, err
		}
		return skills.Names(), nil
	}

	if cfg.Store == nil {
		return nil, storage.ErrNotConfigured
	}
	data, err := cfg.Store.Download(ctx, req.ObjectKey)
	if err != nil {
		return nil, errors.Wrap(err, "file download error")
	}
	text, err := convert.ExtractText(convert.DetectMime(req.ObjectKey, data), data)
	if err != nil {
		return nil, errors.Wrap(err, "text extraction error")
	}
	cv, err := convert.ConvertText(ctx, cfg.LLM, text)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var skills []string
	for _, e := range cv.Experiences {
		for _, tech := range e.Technologies {
			key := strings.ToLower(strings.TrimSpace(tech))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			skills = append(skills, strings.TrimSpace(tech))
		}
	}
	return skills, nil
}

// setStatus records a status change. It outlives ctx so a shutdown in the
// middle of a request still leaves its final status behind.
func (cfg *WorkerConfig) setStatus(ctx context.Context, id, status, message string) {
	ctx = context.WithoutCancel(ctx)
	err := dbRetry(ctx, func() error {
		return cfg.DB.UpdateAnalysisRequestStatus(ctx, database.UpdateAnalysisRequestStatusParams{
			ID:     id,
			Status: status,
			Error:  message,
		})
	})
	if err != nil {
		logger.G(ctx).WithError(err).WithField("status", status).Warn("failed to update analysis request status")
	}
}

func (cfg *WorkerConfig) fail(ctx context.Context, pub publisher, id string, cause error) {
	ctx = context.WithoutCancel(ctx)
	cfg.setStatus(ctx, id, database.StatusFailed, cause.Error())
	publishStatusUpdate(ctx, pub, cfg.Exchange, StatusUpdate{
		RequestID: id,
		Status:    database.StatusFailed,
		Message:   "analysis failed: " + cause.Error(),
		Timestamp: time.Now(),
	})
}

// worker consumes requests one at a time until ctx is cancelled or the
// broker closes the delivery channel.
func (cfg *WorkerConfig) worker(ctx context.Context, id int) error {
	log := logger.G(ctx).WithField("worker", id)
	ctx = logger.WithLogger(ctx, log)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		return errors.Wrap(err, "error dialling rabbitmq")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "error opening rabbitmq channel")
	}
	defer ch.Close()

	if err := declareTopology(ch, cfg.Queue, cfg.Exchange); err != nil {
		return err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return errors.Wrap(err, "failed to set prefetch")
	}

	msgs, err := ch.Consume(
		cfg.Queue,
		"resume-worker-"+strconv.Itoa(id),
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "error consuming rabbitmq messages")
	}
	log.Info("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info("worker stopping")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed by broker")
			}
			cfg.deliver(ctx, log, ch, msg)
		}
	}
}

// deliver settles msg: interrupted requests are requeued, malformed ones
// dropped and everything else acked.
func (cfg *WorkerConfig) deliver(ctx context.Context, log *logrus.Entry, pub publisher, msg amqp.Delivery) {
	err := cfg.handleDelivery(ctx, pub, msg.Body)
	if errors.Is(err, errInterrupted) {
		if err := msg.Nack(false, true); err != nil {
			log.WithError(err).Warn("failed to requeue message")
		}
		return
	}
	if err != nil {
		log.WithError(err).Warn("rejecting message")
		if err := msg.Reject(false); err != nil {
			log.WithError(err).Warn("failed to reject message")
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		log.WithError(err).Warn("failed to ack message")
	}
}

// StartConsumerWorkerPool runs n workers and blocks until all of them stop.
// Worker errors are collected and returned together.
func (cfg *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs *multierror.Error
	)
	wg.Add(n)
	for i := 1; i <= n; i++ {
		go func(id int) {
			defer wg.Done()
			if err := cfg.worker(ctx, id); err != nil {
				logger.G(ctx).WithError(err).WithField("worker", id).Error("worker stopped")
				mu.Lock()
				errs = multierror.Append(errs, errors.Wrapf(err, "worker %d", id))
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	return errs.ErrorOrNil()
}
