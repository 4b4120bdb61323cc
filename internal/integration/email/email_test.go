package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/email/templates"
)

type memoryQueue struct {
	jobs      map[uuid.UUID]*entity.EmailJob
	createErr error
	purged    int
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	if q.createErr != nil {
		return q.createErr
	}
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	var due []*entity.EmailJob
	now := time.Now().UTC()
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			due = append(due, job)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledAt.Before(due[j].ScheduledAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	for _, job := range due {
		job.MarkProcessing()
	}
	return due, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	job, ok := q.jobs[id]
	if !ok {
		return nil, domainerror.ErrEmailJobNotFound
	}
	return job, nil
}

func (q *memoryQueue) DeleteOldSentJobs(context.Context, int) (int64, error) {
	q.purged++
	return 0, nil
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func onlyJob(t *testing.T, queue *memoryQueue) *entity.EmailJob {
	t.Helper()
	require.Len(t, queue.jobs, 1)
	for _, job := range queue.jobs {
		return job
	}
	return nil
}

func TestService_QueueBudgetAlert(t *testing.T) {
	queue := newMemoryQueue()
	svc := NewService(queue)

	err := svc.QueueBudgetAlertEmail(context.Background(), adapter.QueueBudgetAlertInput{
		UserEmail:  "ana@example.com",
		UserName:   "Ana",
		Category:   "Food",
		Period:     "monthly",
		Spent:      "285.00",
		Limit:      "300.00",
		Percentage: "95",
		Status:     "Over",
	})
	require.NoError(t, err)

	job := onlyJob(t, queue)
	assert.Equal(t, entity.TemplateBudgetAlert, job.TemplateType)
	assert.Equal(t, "ana@example.com", job.Recipient.Email)
	assert.Equal(t, "Your Food budget is at 95%", job.Subject)
	assert.Equal(t, "285.00", job.TemplateData[keySpent])
	assert.Equal(t, entity.EmailStatusPending, job.Status)
}

func TestService_QueueFailureIsWrapped(t *testing.T) {
	queue := newMemoryQueue()
	queue.createErr = errors.New("db down")

	err := NewService(queue).QueuePasswordResetEmail(context.Background(), adapter.QueuePasswordResetInput{UserEmail: "a@example.com"})

	var emailErr *domainerror.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.Equal(t, domainerror.ErrCodeEmailQueueFailed, emailErr.Code)
}

func TestWorker_SendsRenderedPasswordReset(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	require.NoError(t, NewService(queue).QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserEmail: "ana@example.com",
		UserName:  "Ana",
		ResetURL:  "https://app.example.com/reset-password?token=abc",
		ExpiresIn: "1 hour",
	}))

	worker.ProcessNow(ctx)

	require.Len(t, sender.SentEmails, 1)
	sent := sender.SentEmails[0]
	assert.Equal(t, "ana@example.com", sent.To)
	assert.Contains(t, sent.HTML, "https://app.example.com/reset-password?token=abc")
	assert.Contains(t, sent.Text, "expires in 1 hour")
	assert.Contains(t, sent.Text, "Hi Ana,")

	job := onlyJob(t, queue)
	assert.Equal(t, entity.EmailStatusSent, job.Status)
	assert.Equal(t, "mock-1", job.ProviderID)
	assert.NotNil(t, job.ProcessedAt)
}

func TestWorker_RendersBudgetAlert(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	require.NoError(t, NewService(queue).QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
		UserEmail:  "ana@example.com",
		Category:   "Transport",
		Period:     "weekly",
		Spent:      "92.00",
		Limit:      "100.00",
		Percentage: "92",
		Status:     "Close",
	}))

	worker.ProcessNow(ctx)

	require.Len(t, sender.SentEmails, 1)
	assert.Contains(t, sender.SentEmails[0].Text, "You have used 92% of your weekly Transport budget.")
	assert.Contains(t, sender.SentEmails[0].HTML, "92.00")
}

func TestWorker_Failures(t *testing.T) {
	tests := []struct {
		name         string
		permanent    bool
		wantStatus   entity.EmailStatus
		wantAttempts int
	}{
		{"temporary failure is rescheduled", false, entity.EmailStatusPending, 1},
		{"permanent failure stops retries", true, entity.EmailStatusFailed, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			queue := newMemoryQueue()
			sender := NewMockEmailSender()
			sender.SetFailure(errors.New("provider said no"), tt.permanent)
			worker := newTestWorker(t, queue, sender)

			require.NoError(t, NewService(queue).QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{UserEmail: "a@example.com"}))
			worker.ProcessNow(ctx)

			job := onlyJob(t, queue)
			assert.Equal(t, tt.wantStatus, job.Status)
			assert.Equal(t, tt.wantAttempts, job.Attempts)
			assert.Contains(t, job.LastError, "provider said no")
			if !tt.permanent {
				assert.True(t, job.ScheduledAt.After(time.Now().UTC()))
			}
		})
	}
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	job := entity.NewEmailJob("newsletter", entity.EmailRecipient{Email: "a@example.com"}, "Hello", nil)
	require.NoError(t, queue.Create(ctx, job))

	worker.ProcessNow(ctx)

	assert.Empty(t, sender.SentEmails)
	assert.Equal(t, entity.EmailStatusFailed, job.Status)
}

func TestWorker_StartStopsOnCancel(t *testing.T) {
	queue := newMemoryQueue()
	worker := newTestWorker(t, queue, NewMockEmailSender())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		err  string
		want domainerror.EmailErrorCode
	}{
		{"[ERROR]: 422 validation_error: invalid `to` field", domainerror.ErrCodePermanentEmailFailure},
		{"[ERROR]: 401 missing API key", domainerror.ErrCodePermanentEmailFailure},
		{"[ERROR]: 429 rate limit exceeded", domainerror.ErrCodeTemporaryEmailFailure},
		{"dial tcp: i/o timeout", domainerror.ErrCodeTemporaryEmailFailure},
	}
	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			var emailErr *domainerror.EmailError
			require.ErrorAs(t, classifySendError(errors.New(tt.err)), &emailErr)
			assert.Equal(t, tt.want, emailErr.Code)
		})
	}
}

func TestResendClient_SendsToBaseURL(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	client := NewResendClient("re_test", "Personal Finance", "noreply@example.com")
	require.NoError(t, client.SetBaseURL(server.URL))

	res, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "ana@example.com",
		Name:    "Ana",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	})

	require.NoError(t, err)
	assert.Equal(t, "msg_123", res.ProviderID)
	assert.Equal(t, "Personal Finance <noreply@example.com>", got["from"])
	assert.Equal(t, []any{"Ana <ana@example.com>"}, got["to"])
	assert.Equal(t, "Hello", got["subject"])
}
