package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"veriflow/config"
	verificationRepo "veriflow/database/repository/verification"
	"veriflow/models"
	"veriflow/services/sumsub"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

const TypeReconcileStale = "verification:reconcile_stale"

// Records pending longer than this are re-checked against the provider API,
// covering the case where a webhook never arrives.
const staleAfter = time.Hour

// InitReconcilerWorker runs the async worker and its periodic schedule in
// the background.
func InitReconcilerWorker(repo verificationRepo.VerificationRepository, sumsubClient *sumsub.Client) {
	if sumsubClient == nil {
		log.Println("[Reconciler] Sumsub credentials missing, stale reconciler disabled")
		return
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReconcileStale, handleReconcileTask(repo, sumsubClient))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 10m", asynq.NewTask(TypeReconcileStale, nil)); err != nil {
		log.Printf("[Reconciler] Failed to register schedule: %v", err)
		return
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[Reconciler] Starting scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Printf("[Reconciler] Scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[Reconciler] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Reconciler] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Reconciler] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReconcileTask(repo verificationRepo.VerificationRepository, client *sumsub.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		cutoff := time.Now().Add(-staleAfter)
		stale, err := repo.FindStalePending(cutoff, 100)
		if err != nil {
			log.Printf("[Reconciler] Failed to list stale records: %v", err)
			return err
		}

		for _, rec := range stale {
			status, err := fetchProviderStatus(ctx, client, rec.Email)
			if err != nil {
				log.Printf("[Reconciler] Skipping %s: %v", rec.Email, err)
				continue
			}
			if status == rec.Status {
				continue
			}

			fields := bson.M{
				"status":      status,
				"lastUpdated": time.Now(),
			}
			if err := repo.UpsertStatus(rec.Email, fields); err != nil {
				log.Printf("[Reconciler] Failed to update %s: %v", rec.Email, err)
				continue
			}
			log.Printf("[Reconciler] Reconciled %s: %s -> %s", rec.Email, rec.Status, status)
		}
		return nil
	}
}

// fetchProviderStatus resolves the applicant by the vendor-data identifier
// (the email) and maps the provider's review answer to a record status.
func fetchProviderStatus(ctx context.Context, client *sumsub.Client, email string) (models.VerificationStatus, error) {
	applicantID, err := client.FindApplicantID(ctx, email)
	if err != nil {
		return "", err
	}

	raw, err := client.GetApplicantStatus(ctx, applicantID)
	if err != nil {
		return "", err
	}

	var out struct {
		ReviewStatus string `json:"reviewStatus"`
		ReviewResult struct {
			ReviewAnswer string `json:"reviewAnswer"`
		} `json:"reviewResult"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}

	switch out.ReviewResult.ReviewAnswer {
	case "GREEN":
		return models.StatusApproved, nil
	case "RED":
		return models.StatusDeclined, nil
	}
	return models.StatusPending, nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Reconciler] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
