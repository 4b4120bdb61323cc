//go:build integration

package steps

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("test server is not running: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, defaultTestPassword, "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password),
		BudgetAlerts: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

// iAmLoggedInAs logs in through the API, creating the user with the default
// password first when needed.
func (t *testContext) iAmLoggedInAs(email string) error {
	var existing model.UserModel
	err := t.db.DbConn.Where("email = ?", email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := t.aUserExistsWithEmail(email); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	payload, _ := json.Marshal(map[string]string{"email": email, "password": defaultTestPassword})
	t.accessToken = ""
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login as %s failed with %d: %v", email, t.response.status, t.response.body)
	}

	body := t.response.body.(map[string]any)
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)
	return nil
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	token, err := t.insertResetToken(email, time.Now().UTC().Add(time.Hour))
	t.resetToken = token
	return err
}

func (t *testContext) anExpiredPasswordResetTokenExistsFor(email string) error {
	token, err := t.insertResetToken(email, time.Now().UTC().Add(-time.Hour))
	t.expiredToken = token
	return err
}

func (t *testContext) insertResetToken(email string, expiresAt time.Time) (string, error) {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return "", fmt.Errorf("user not found: %w", err)
	}

	token := "reset-" + uuid.NewString()
	sum := sha256.Sum256([]byte(token))
	row := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		TokenHash: hex.EncodeToString(sum[:]),
		UserID:    user.ID,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: expiresAt.Add(-time.Hour),
	}
	return token, t.db.DbConn.Create(row).Error
}

func (t *testContext) iHaveAnExpense(amount, category, description string) error {
	return t.create("/api/v1/expenses", map[string]any{
		"description": description,
		"amount":      amount,
		"category":    category,
	})
}

func (t *testContext) iHaveABudget(period, category, limit string) error {
	return t.create("/api/v1/budgets", map[string]any{
		"category":     category,
		"limit_amount": limit,
		"period":       period,
	})
}

func (t *testContext) iHaveAGoal(name, target string, months int) error {
	return t.create("/api/v1/goals", map[string]any{
		"name":          name,
		"target_amount": target,
		"deadline":      time.Now().UTC().AddDate(0, months, 0).Format("2006-01-02"),
	})
}

func (t *testContext) create(path string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if err := t.executeRequest(http.MethodPost, path, payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("POST %s returned %d: %v", path, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = map[string]string{}
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	now := time.Now().UTC()
	return strings.NewReplacer(
		"{{refresh_token}}", t.refreshToken,
		"{{access_token}}", t.accessToken,
		"{{reset_token}}", t.resetToken,
		"{{expired_reset_token}}", t.expiredToken,
		"{{last_id}}", t.lastID,
		"{{today}}", now.Format("2006-01-02"),
		"{{next_year}}", now.AddDate(1, 0, 0).Format("2006-01-02"),
	).Replace(content)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if id, ok := responseBody["id"].(string); ok {
		t.lastID = id
	}
	if token, ok := responseBody["refresh_token"].(string); ok {
		t.refreshToken = token
	}
	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	expectedValue = t.replacePlaceholders(expectedValue)
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	rows := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(rows.Interface()).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if count := rows.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	if got := t.provider.RequestCount(http.MethodPost, resendEmailsPath); got != count {
		return fmt.Errorf("expected %d emails sent, got %d", count, got)
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeAddressedTo(email string) error {
	body := t.provider.GetRequestBody(http.MethodPost, resendEmailsPath, -1)
	if body == nil {
		return errors.New("no email was sent")
	}
	to, _ := body["to"].([]any)
	for _, recipient := range to {
		if s, ok := recipient.(string); ok && strings.Contains(s, email) {
			return nil
		}
	}
	return fmt.Errorf("last email was sent to %v, not %s", to, email)
}

func (t *testContext) theLastEmailSubjectShouldContain(fragment string) error {
	body := t.provider.GetRequestBody(http.MethodPost, resendEmailsPath, -1)
	if body == nil {
		return errors.New("no email was sent")
	}
	subject, _ := body["subject"].(string)
	if !strings.Contains(subject, fragment) {
		return fmt.Errorf("subject %q does not contain %q", subject, fragment)
	}
	return nil
}

func getFieldValue(object map[string]any, dotSeparatedField string) any {
	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case []any:
			i, err := strconv.Atoi(currentField)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			field = v[i]
		case map[string]any:
			field = v[currentField]
		default:
			return nil
		}
	}
	return field
}
