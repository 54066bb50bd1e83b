package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/resumeascode/internal/convert"
	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/logger"
	"github.com/muhammadolammi/resumeascode/internal/storage"
)

func rabbitURL() (string, error) {
	url := viper.GetString("rabbitmq_url")
	if url == "" {
		return "", errors.New("RABBITMQ_URL is not set")
	}
	return url, nil
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis requests from RabbitMQ",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		url, err := rabbitURL()
		if err != nil {
			return err
		}
		workers := viper.GetInt("worker.workers")
		if cmd.Flags().Changed("workers") {
			workers, _ = cmd.Flags().GetInt("workers")
		}

		q, closeDB, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		client, err := newLLMClient(ctx)
		if err != nil {
			return err
		}

		// CV requests fail individually when storage is missing
		store, err := newStore(ctx)
		if errors.Is(err, storage.ErrNotConfigured) {
			logger.G(ctx).Warn("object storage is not configured, requests with an object_key will fail")
			store = nil
		} else if err != nil {
			return err
		}

		cfg := &WorkerConfig{
			DB:        q,
			Store:     store,
			LLM:       client,
			DataDir:   dataDir(),
			RabbitURL: url,
			Queue:     viper.GetString("worker.queue"),
			Exchange:  viper.GetString("worker.exchange"),
		}
		logger.G(ctx).WithField("workers", workers).WithField("queue", cfg.Queue).Info("starting worker pool")
		return cfg.StartConsumerWorkerPool(ctx, workers)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Queue an analysis request for the worker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := present(cmd)
		flags := cmd.Flags()
		profile, _ := flags.GetString("profile")
		jobPath, _ := flags.GetString("job")
		jobTitle, _ := flags.GetString("job-title")
		cvPath, _ := flags.GetString("cv")
		objectKey, _ := flags.GetString("object-key")
		wait, _ := flags.GetDuration("wait")

		if profile == "" && cvPath == "" && objectKey == "" {
			return errors.New("one of --profile, --cv or --object-key is required")
		}
		jobText, err := convert.ExtractFile(jobPath)
		if err != nil {
			return errors.Wrap(err, "failed to read job description")
		}

		req := AnalysisRequest{
			ID:             uuid.New().String(),
			Profile:        profile,
			JobTitle:       jobTitle,
			JobDescription: jobText,
			ObjectKey:      objectKey,
		}

		if cvPath != "" {
			store, err := newStore(ctx)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(cvPath)
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", cvPath)
			}
			req.ObjectKey = "cvs/" + req.ID + "/" + filepath.Base(cvPath)
			if err := store.Upload(ctx, req.ObjectKey, data, convert.DetectMime(cvPath, data)); err != nil {
				return err
			}
			p.Dim("Uploaded CV to " + req.ObjectKey)
		}

		url, err := rabbitURL()
		if err != nil {
			return err
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			return errors.Wrap(err, "error dialling rabbitmq")
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			return errors.Wrap(err, "error opening rabbitmq channel")
		}
		defer ch.Close()

		queue, exchange := viper.GetString("worker.queue"), viper.GetString("worker.exchange")
		if err := declareTopology(ch, queue, exchange); err != nil {
			return err
		}

		var updates <-chan amqp.Delivery
		if wait > 0 {
			// bind before publishing so no update is missed
			if updates, err = subscribeUpdates(ch, exchange, req.ID); err != nil {
				return err
			}
		}

		if err := publishJSON(ch, "", queue, req); err != nil {
			return errors.Wrap(err, "failed to publish analysis request")
		}
		p.Success("Queued analysis request " + req.ID)
		if wait <= 0 {
			return nil
		}

		timeout := time.After(wait)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timeout:
				return errors.Errorf("no final status for %s after %s", req.ID, wait)
			case msg, ok := <-updates:
				if !ok {
					return errors.New("update subscription closed")
				}
				var update StatusUpdate
				if err := json.Unmarshal(msg.Body, &update); err != nil {
					logger.G(ctx).WithError(err).Warn("ignoring malformed status update")
					continue
				}
				switch update.Status {
				case database.StatusCompleted:
					text := "Analysis " + update.AnalysisID + " completed"
					if update.MatchPercentage != nil {
						text += ": " + formatPercent(*update.MatchPercentage) + " match"
					}
					p.Success(text)
					return nil
				case database.StatusFailed:
					return errors.New(update.Message)
				default:
					p.Dim(update.Status + ": " + update.Message)
				}
			}
		}
	},
}

// subscribeUpdates binds an exclusive queue to the request's routing key.
func subscribeUpdates(ch *amqp.Channel, exchange, requestID string) (<-chan amqp.Delivery, error) {
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to declare update queue")
	}
	if err := ch.QueueBind(q.Name, statusRoutingKey(requestID), exchange, false, nil); err != nil {
		return nil, errors.Wrap(err, "failed to bind update queue")
	}
	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	return msgs, errors.Wrap(err, "failed to consume updates")
}

func init() {
	workerCmd.Flags().IntP("workers", "w", 3, "Number of concurrent workers")

	flags := submitCmd.Flags()
	flags.String("profile", "", "Profile whose skills are compared")
	flags.String("job", "", "Job description file (txt, md, html, pdf or docx)")
	flags.String("job-title", "", "Job title stored with the analysis")
	flags.String("cv", "", "CV file to upload and analyze instead of a profile")
	flags.String("object-key", "", "Key of a CV already in object storage")
	flags.Duration("wait", 0, "Wait up to this long for the request to finish")
	_ = submitCmd.MarkFlagRequired("job")
}
