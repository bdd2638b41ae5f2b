// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finplan/backend/config"
	"github.com/finplan/backend/internal/infra/dependency"
	"github.com/finplan/backend/internal/integration/persistence/model"
	"github.com/finplan/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// resendEmailsPath is where the Resend SDK posts messages.
const resendEmailsPath = "/emails"

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	redis       *redis.Client
	resend      *mock.ApiMock
	accessToken string
	userID      uuid.UUID
	goalID      uuid.UUID
	holdingID   uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit sync.Once
	server     *httptest.Server
	resendMock *mock.ApiMock
	startErr   error
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
		if resendMock != nil {
			resendMock.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":    &model.UserModel{},
			"goals":    &model.GoalModel{},
			"holdings": &model.HoldingModel{},
		}),
		redis: mock.NewRedis(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^I am registered as "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Given(`^email notifications are disabled for "([^"]*)"$`, test.emailNotificationsAreDisabledFor)

	// Email provider steps
	ctx.Given(`^the email provider rejects messages$`, test.theEmailProviderRejectsMessages)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email subject should be "([^"]*)"$`, test.theLastEmailSubjectShouldBe)
	ctx.Then(`^the last email text should contain "([^"]*)"$`, test.theLastEmailTextShouldContain)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database and cache assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the calculator cache should hold (\d+) entr(?:y|ies)$`, test.theCalculatorCacheShouldHold)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.userID = uuid.Nil
	t.goalID = uuid.Nil
	t.holdingID = uuid.Nil

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	if resendMock != nil {
		resendMock.ClearResponses()
		resendMock.SetResponse(-1, http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": "msg_test"})
	}
	return nil
}

func (t *testContext) startServer() error {
	serverInit.Do(func() {
		resendMock = mock.NewApiServer()
		resendMock.Start()
		resendMock.SetResponse(-1, http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": "msg_test"})

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.AccessTokenExpiry = time.Hour
		cfg.Email.ResendAPIKey = "re_test"
		cfg.Email.ResendBaseURL = resendMock.GetUrl()

		injector, err := dependency.NewInjector(cfg, dependency.Options{
			DB:       t.db.DbConn,
			DBHealth: func() bool { return t.db.DbConn != nil },
			Redis:    t.redis,
		})
		if err != nil {
			startErr = err
			return
		}
		server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	if startErr != nil {
		return startErr
	}

	t.uri = server.URL
	t.resend = resendMock
	return nil
}
