package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finplan/backend/test/integration/mock"
)

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

// iAmRegisteredAs registers a user through the API and keeps its token.
func (t *testContext) iAmRegisteredAs(email string) error {
	payload := fmt.Sprintf(`{"email":%q,"name":"Test User","password":"Str0ngPass!"}`, email)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %v", t.response.status, t.response.body)
	}

	body, _ := t.response.body.(map[string]any)
	token, _ := body["access_token"].(string)
	if token == "" {
		return fmt.Errorf("registration returned no access token: %v", body)
	}
	t.accessToken = token

	if id, ok := getFieldValue(body, "user.id").(string); ok {
		t.userID, _ = uuid.Parse(id)
	}
	return nil
}

func (t *testContext) emailNotificationsAreDisabledFor(email string) error {
	return t.db.DbConn.Table("users").Where("email = ?", email).Update("email_notifications", false).Error
}

func (t *testContext) theEmailProviderRejectsMessages() error {
	t.resend.SetResponse(-1, http.MethodPost, resendEmailsPath, http.StatusUnprocessableEntity, map[string]any{
		"statusCode": 422,
		"name":       "validation_error",
		"message":    "The from address is not verified",
	})
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	if got := t.resend.RequestCount(http.MethodPost, resendEmailsPath); got != count {
		return fmt.Errorf("expected %d emails, provider received %d", count, got)
	}
	return nil
}

func (t *testContext) lastEmail() (map[string]any, error) {
	count := t.resend.RequestCount(http.MethodPost, resendEmailsPath)
	if count == 0 {
		return nil, errors.New("no email was sent")
	}
	return t.resend.GetRequestBody(http.MethodPost, resendEmailsPath, count-1), nil
}

func (t *testContext) theLastEmailSubjectShouldBe(subject string) error {
	email, err := t.lastEmail()
	if err != nil {
		return err
	}
	if got := fmt.Sprintf("%v", email["subject"]); got != subject {
		return fmt.Errorf("expected subject %q, got %q", subject, got)
	}
	return nil
}

func (t *testContext) theLastEmailTextShouldContain(fragment string) error {
	email, err := t.lastEmail()
	if err != nil {
		return err
	}
	text := fmt.Sprintf("%v", email["text"])
	if !strings.Contains(text, fragment) {
		return fmt.Errorf("email text does not contain %q:\n%s", fragment, text)
	}
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{goal_id}}", t.goalID.String())
	content = strings.ReplaceAll(content, "{{holding_id}}", t.holdingID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
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

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture created resource ids for later placeholders
	if method == http.MethodPost && resp.StatusCode == http.StatusCreated {
		if id, err := uuid.Parse(fmt.Sprintf("%v", responseBody["id"])); err == nil {
			switch {
			case strings.HasPrefix(path, "/api/v1/goals"):
				t.goalID = id
			case strings.HasPrefix(path, "/api/v1/portfolio/holdings"):
				t.holdingID = id
			}
		}
	}

	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
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
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil && expectedValue != "<nil>" {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
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

// countRows counts live rows of table matching criteria.
func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theCalculatorCacheShouldHold(count int) error {
	keys, err := mock.RedisKeys(t.redis, "calc:*")
	if err != nil {
		return err
	}
	if len(keys) != count {
		return fmt.Errorf("expected %d cached calculator results, got %d (%v)", count, len(keys), keys)
	}
	return nil
}

// getFieldValue walks a dot separated path such as "user.id" or "series.0.value".
func getFieldValue(object any, dotSeparatedField string) any {
	current := object
	for _, part := range strings.Split(dotSeparatedField, ".") {
		switch v := current.(type) {
		case map[string]any:
			current = v[part]
		case []any:
			var index int
			if _, err := fmt.Sscanf(part, "%d", &index); err != nil || index < 0 || index >= len(v) {
				return nil
			}
			current = v[index]
		default:
			return nil
		}
		if current == nil {
			return nil
		}
	}
	return current
}
