package trivia

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers(store *stubQuestionStore) *HTTPHandlers {
	svc := NewService(store, testCategories(), nil, ServiceOptions{Selector: NewSeededSelector(5)}, zerolog.New(io.Discard))
	return NewHTTPHandlers(svc, zerolog.New(io.Discard))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func assertErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	assert.Equal(t, status, rec.Code)
	var envelope struct {
		Success bool   `json:"success"`
		Error   int    `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, status, envelope.Error)
	assert.NotEmpty(t, envelope.Message)
}

func TestCategoriesEndpoint(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	rec := httptest.NewRecorder()
	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success    bool           `json:"success"`
		Categories map[int]string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Science", body.Categories[1])
}

func TestCategoriesEndpointRejectsPost(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	rec := httptest.NewRecorder()
	h.Categories(rec, httptest.NewRequest(http.MethodPost, "/categories", nil))
	assertErrorEnvelope(t, rec, http.StatusMethodNotAllowed)
}

func TestListQuestionsEndpoint(t *testing.T) {
	h := testHandlers(newStubQuestionStore(seedQuestions(12, 1)...))

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodGet, "/questions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success         bool           `json:"success"`
		Questions       []Question     `json:"questions"`
		TotalQuestions  int            `json:"totalQuestions"`
		Categories      map[int]string `json:"categories"`
		CurrentCategory *string        `json:"currentCategory"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Questions, 10)
	assert.Equal(t, 12, body.TotalQuestions)
	assert.NotEmpty(t, body.Categories)
	assert.Nil(t, body.CurrentCategory)
}

func TestListQuestionsEndpointPageBeyondData(t *testing.T) {
	h := testHandlers(newStubQuestionStore(seedQuestions(3, 1)...))

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodGet, "/questions?page=9", nil))
	assertErrorEnvelope(t, rec, http.StatusNotFound)
}

func TestSearchEndpoint(t *testing.T) {
	h := testHandlers(newStubQuestionStore(
		Question{ID: 1, Question: "Jupiter is a planet", Answer: "True", Category: 1, Difficulty: 1},
	))

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"searchTerm":"plan"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	var questions []Question
	require.NoError(t, json.Unmarshal(body["questions"], &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, "null", string(body["currentCategory"]))
}

func TestSearchEndpointZeroMatches(t *testing.T) {
	h := testHandlers(newStubQuestionStore(seedQuestions(2, 1)...))

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"searchTerm":"nebula"}`)))
	assertErrorEnvelope(t, rec, http.StatusNotFound)
}

func TestCreateEndpoint(t *testing.T) {
	store := newStubQuestionStore()
	h := testHandlers(store)

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"question":"What is the largest planet?","answer":"Jupiter","category":1,"difficulty":2}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, store.questions, 1)
}

func TestCreateEndpointMissingField(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodPost, "/questions",
		strings.NewReader(`{"question":"incomplete","answer":"","category":1,"difficulty":2}`)))
	assertErrorEnvelope(t, rec, http.StatusUnprocessableEntity)
}

func TestCreateEndpointMalformedJSON(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodPost, "/questions", strings.NewReader(`{`)))
	assertErrorEnvelope(t, rec, http.StatusBadRequest)
}

func TestQuestionsEndpointRejectsPut(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	rec := httptest.NewRecorder()
	h.Questions(rec, httptest.NewRequest(http.MethodPut, "/questions", nil))
	assertErrorEnvelope(t, rec, http.StatusMethodNotAllowed)
}

func TestDeleteEndpoint(t *testing.T) {
	store := newStubQuestionStore(seedQuestions(2, 1)...)
	h := testHandlers(store)

	req := httptest.NewRequest(http.MethodDelete, "/questions/2", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	h.DeleteQuestion(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "2", string(body["id"]))
	assert.Len(t, store.questions, 1)
}

func TestDeleteEndpointUnknownID(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	req := httptest.NewRequest(http.MethodDelete, "/questions/42", nil)
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.DeleteQuestion(rec, req)
	assertErrorEnvelope(t, rec, http.StatusNotFound)
}

func TestDeleteEndpointNonNumericID(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	req := httptest.NewRequest(http.MethodDelete, "/questions/abc", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.DeleteQuestion(rec, req)
	assertErrorEnvelope(t, rec, http.StatusNotFound)
}

func TestQuestionsByCategoryEndpoint(t *testing.T) {
	h := testHandlers(newStubQuestionStore(
		Question{ID: 1, Question: "q1", Answer: "a1", Category: 2, Difficulty: 1},
		Question{ID: 2, Question: "q2", Answer: "a2", Category: 1, Difficulty: 1},
	))

	req := httptest.NewRequest(http.MethodGet, "/categories/2/questions", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	h.QuestionsByCategory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success         bool       `json:"success"`
		Questions       []Question `json:"questions"`
		TotalQuestions  int        `json:"totalQuestions"`
		CurrentCategory string     `json:"currentCategory"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.TotalQuestions)
	assert.Equal(t, "Art", body.CurrentCategory)
}

func TestQuestionsByCategoryEndpointUnknownCategory(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	req := httptest.NewRequest(http.MethodGet, "/categories/99/questions", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.QuestionsByCategory(rec, req)
	assertErrorEnvelope(t, rec, http.StatusNotFound)
}

func TestQuizEndpointReturnsUnplayedQuestion(t *testing.T) {
	h := testHandlers(newStubQuestionStore(seedQuestions(3, 1)...))

	rec := httptest.NewRecorder()
	h.NextQuizQuestion(rec, httptest.NewRequest(http.MethodPost, "/quizzes",
		strings.NewReader(`{"previous_questions":[1,3],"quiz_category":{"id":1,"type":"Science"}}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success  bool      `json:"success"`
		Question *Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Question)
	assert.Equal(t, 2, body.Question.ID)
}

func TestQuizEndpointExhaustionIsSuccess(t *testing.T) {
	h := testHandlers(newStubQuestionStore(seedQuestions(2, 1)...))

	rec := httptest.NewRecorder()
	h.NextQuizQuestion(rec, httptest.NewRequest(http.MethodPost, "/quizzes",
		strings.NewReader(`{"previous_questions":[1,2]}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "true", string(body["success"]))
	assert.Equal(t, "null", string(body["question"]))
}

func TestQuizEndpointZeroCategoryMeansAll(t *testing.T) {
	h := testHandlers(newStubQuestionStore(
		Question{ID: 1, Question: "q1", Answer: "a1", Category: 1, Difficulty: 1},
		Question{ID: 2, Question: "q2", Answer: "a2", Category: 2, Difficulty: 1},
	))

	rec := httptest.NewRecorder()
	h.NextQuizQuestion(rec, httptest.NewRequest(http.MethodPost, "/quizzes",
		strings.NewReader(`{"previous_questions":[2],"quiz_category":{"id":0,"type":"click"}}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Question *Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Question)
	assert.Equal(t, 1, body.Question.ID)
}

func TestQuizEndpointMalformedBody(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	rec := httptest.NewRecorder()
	h.NextQuizQuestion(rec, httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader(`not json`)))
	assertErrorEnvelope(t, rec, http.StatusBadRequest)
}

func TestQuizEndpointRejectsGet(t *testing.T) {
	h := testHandlers(newStubQuestionStore())

	rec := httptest.NewRecorder()
	h.NextQuizQuestion(rec, httptest.NewRequest(http.MethodGet, "/quizzes", nil))
	assertErrorEnvelope(t, rec, http.StatusMethodNotAllowed)
}
