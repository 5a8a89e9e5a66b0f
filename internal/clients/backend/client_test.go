package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/quantumstack/site/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

const baseURL = "http://backend.local/api"

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func fileResponse(t *testing.T, name string) *http.Response {
	file, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}
}

func statusResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func requestTo(method, url string) any {
	return mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == method && req.URL.String() == url
	})
}

func newTestClient(httpClient HTTPClient) *Client {
	client := NewClient(baseURL+"/", time.Second)
	client.SetHTTPClient(httpClient)
	return client
}

func Test_BackendClient_GetJobs_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", requestTo(http.MethodGet, baseURL+"/jobs/")).
		Return(fileResponse(t, "get_jobs.json"), nil)

	jobs, err := newTestClient(mockClient).GetJobs(context.Background())
	assert.NoError(err)

	assert.Len(jobs, 2)
	assert.Equal("senior-fullstack-dev", jobs[0].ID)
	assert.Equal(entities.Hybrid, jobs[0].Site)
	assert.NotNil(jobs[0].SalaryRange)
	assert.Len(jobs[0].Responsibilities, 2)
	assert.Equal("ui-ux-designer", jobs[1].ID)
	assert.Nil(jobs[1].SalaryRange)
	mockClient.AssertExpectations(t)
}

func Test_BackendClient_GetStaff_UnwrapsPaginatedResults(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", requestTo(http.MethodGet, baseURL+"/staff/")).
		Return(fileResponse(t, "get_staff.json"), nil)

	staff, err := newTestClient(mockClient).GetStaff(context.Background())
	require.NoError(t, err)

	require.Len(t, staff, 2)
	assert.Equal(t, "Hasan Ahmad", staff[0].FullName)
	assert.Equal(t, "CEO & Founder", staff[0].Role.Name)
	assert.Equal(t, "amina-yusuf", staff[1].PathSlug())
}

func Test_BackendClient_GetStaffMember_ShouldBeSuccessful(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", requestTo(http.MethodGet, baseURL+"/staff/amina-yusuf/")).
		Return(fileResponse(t, "get_staff_member.json"), nil)

	member, err := newTestClient(mockClient).GetStaffMember(context.Background(), "amina-yusuf")
	require.NoError(t, err)

	assert.Equal(t, "Amina Yusuf", member.FullName)
	assert.Len(t, member.Socials, 2)
	assert.Equal(t, "Security", member.Skills[1].Name)
}

func Test_BackendClient_GetStaffMember_NotFound(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", requestTo(http.MethodGet, baseURL+"/staff/ghost/")).
		Return(statusResponse(http.StatusNotFound, `{"detail":"Not found."}`), nil)

	_, err := newTestClient(mockClient).GetStaffMember(context.Background(), "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = newTestClient(mockClient).GetStaffMember(context.Background(), "  ")
	assert.True(t, errors.Is(err, ErrNotFound))
	mockClient.AssertNumberOfCalls(t, "Do", 1)
}

func Test_BackendClient_GetPortfolio_ShouldBeSuccessful(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", requestTo(http.MethodGet, baseURL+"/portfolio/")).
		Return(fileResponse(t, "get_portfolio.json"), nil)

	projects, err := newTestClient(mockClient).GetPortfolio(context.Background())
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.True(t, projects[0].Pinned)
	assert.Equal(t, entities.StatusLive, projects[1].Status)
}

func Test_BackendClient_ServerErrorIsReturned(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", requestTo(http.MethodGet, baseURL+"/jobs/")).
		Return(statusResponse(http.StatusInternalServerError, "boom"), nil)

	jobs, err := newTestClient(mockClient).GetJobs(context.Background())
	assert.Nil(t, jobs)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "boom", statusErr.Body)
}

func Test_BackendClient_NetworkErrorIsReturned(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := newTestClient(mockClient).GetPortfolio(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func Test_BackendClient_SubmitContact_PostsJSON(t *testing.T) {

	submission := entities.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "Hello"}

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.Method != http.MethodPost || req.URL.String() != baseURL+"/contact/" {
			return false
		}
		var body map[string]string
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return false
		}
		return req.Header.Get("Content-Type") == "application/json" &&
			body["name"] == "Ada" && body["email"] == "ada@example.com" && body["message"] == "Hello"
	})).Return(statusResponse(http.StatusCreated, `{"id": 1}`), nil).Once()

	err := newTestClient(mockClient).SubmitContact(context.Background(), submission)
	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func Test_BackendClient_Health(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", requestTo(http.MethodGet, baseURL+"/health")).
		Return(statusResponse(http.StatusServiceUnavailable, "sleeping"), nil).Once()

	assert.Error(t, newTestClient(mockClient).Health(context.Background()))
}

func Test_BackendClient_RateLimitHonoursContext(t *testing.T) {

	client := newTestClient(&mockHTTPClient{})
	client.SetRateLimit(0.001)
	client.rateLimiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetJobs(ctx)
	assert.Error(t, err)
}
