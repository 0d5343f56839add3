package trivia

// Question is a stored trivia question. Answer is kept canonical lowercase
// and is never sent to clients.
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionResponse is the GET /trivia payload.
type QuestionResponse struct {
	QID      string `json:"qid"`
	Question string `json:"question"`
}

// AnswerRequest is the POST /trivia body. CookiesEarned is the count the
// client held before this answer.
type AnswerRequest struct {
	QID           string `json:"qid"`
	Answer        string `json:"answer"`
	UserName      string `json:"userName"`
	UserDate      int64  `json:"userDate"`
	CookiesEarned int    `json:"cookiesEarned"`
}

// CookieContentMessage is the only cookie content type served today.
const CookieContentMessage = "message"

// AnswerResponse is the POST /trivia success payload for a correct answer.
// TopRank is null when the answer counted but the board is unchanged.
type AnswerResponse struct {
	IsAnswerCorrect   bool   `json:"isAnswerCorrect"`
	CookieContentType string `json:"cookieContentType"`
	Value             string `json:"value"`
	TopRank           *int   `json:"topRank"`
}
