package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// RegisterRequest is the sign-up body
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

// LoginRequest is the sign-in body
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

// SessionResponse is returned by register and login
type SessionResponse struct {
	Message  string `json:"message" example:"Login successful"`
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Username string `json:"username" example:"alice"`
}

// RecognizeRequest carries one base64 image, optionally as a data URI
type RecognizeRequest struct {
	Image     string  `json:"image" example:"data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ..."`
	Threshold float64 `json:"threshold,omitempty" example:"0.4"`
}

// FaceResult describes one detected face
type FaceResult struct {
	BBox       []int   `json:"bbox" example:"[120,80,260,240]"`
	Name       string  `json:"name" example:"Alice"`
	Relation   string  `json:"relation,omitempty" example:"sister"`
	Confidence float64 `json:"confidence" example:"0.87"`
	Matched    bool    `json:"matched" example:"true"`
}

// RecognizeResponse lists every face found in the image
type RecognizeResponse struct {
	Faces []FaceResult `json:"faces"`
	Count int          `json:"count" example:"1"`
}

// AddAcquaintanceRequest enrolls one person
type AddAcquaintanceRequest struct {
	Name         string `json:"name" example:"Alice"`
	Relationship string `json:"relationship" example:"sister"`
	Image        string `json:"image" example:"data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ..."`
}

// AcquaintanceCreated is returned after enrollment
type AcquaintanceCreated struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string `json:"name" example:"Alice"`
	Relationship string `json:"relationship" example:"sister"`
}

// Acquaintance is one gallery entry
type Acquaintance struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string `json:"name" example:"Alice"`
	Relationship string `json:"relationship" example:"sister"`
	Image        string `json:"image" example:"data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ..."`
	AddedAt      string `json:"added_at" example:"2024-01-01T00:00:00Z"`
}

// MessageResponse is a plain confirmation
type MessageResponse struct {
	Message string `json:"message" example:"Acquaintance deleted"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// HealthResponse is returned by the probes
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

var bearer = endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}})

func errorReturn(status, code, message, description string) response.Response {
	return response.New(ErrorResponse{Code: code, Message: message}, status, description)
}

var (
	errUnauthorized = errorReturn("401", "UNAUTHORIZED", "Invalid or missing token", "Unauthorized")
	errRateLimited  = errorReturn("429", "RATE_LIMIT_EXCEEDED", "Rate limit exceeded, please try again later", "Too Many Requests")
	errInternal     = errorReturn("500", "INTERNAL_ERROR", "An unexpected error occurred", "Internal Server Error")
)

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Acquaint API",
		Version:     "v1.0.0",
		Description: "Enroll the people you know and recognize them in photos or live camera frames",
		Host:        "localhost:5000",
		Path:        "/api",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /api/auth/register
		endpoint.New(
			endpoint.POST,
			"/auth/register",
			endpoint.WithTags("Auth"),
			endpoint.WithSummary("Create an account"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(RegisterRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "201", "Account created"),
			}),
			endpoint.WithErrors([]response.Response{
				errorReturn("400", "VALIDATION_FAILED", "Request validation failed", "Bad Request"),
				errorReturn("409", "EMAIL_TAKEN", "Email already registered", "Conflict"),
				errorReturn("409", "USERNAME_TAKEN", "Username already taken", "Conflict"),
				errRateLimited,
				errInternal,
			}),
		),

		// POST /api/auth/login
		endpoint.New(
			endpoint.POST,
			"/auth/login",
			endpoint.WithTags("Auth"),
			endpoint.WithSummary("Sign in with email and password"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(LoginRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "200", "Signed in"),
			}),
			endpoint.WithErrors([]response.Response{
				errorReturn("401", "INVALID_CREDENTIALS", "Invalid email or password", "Unauthorized"),
				errRateLimited,
				errInternal,
			}),
		),

		// POST /api/recognize
		endpoint.New(
			endpoint.POST,
			"/recognize",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Recognize every face in an image"),
			endpoint.WithDescription("Detects all faces and matches each against the caller's gallery by cosine similarity. Faces scoring at or below the threshold are reported as Unknown."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(RecognizeRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognizeResponse{}, "200", "Recognition completed"),
			}),
			endpoint.WithErrors([]response.Response{
				errorReturn("400", "MISSING_FIELD", "A required field is missing", "Bad Request"),
				errUnauthorized,
				errorReturn("422", "INVALID_IMAGE", "Invalid image format or corrupted file", "Unprocessable Entity"),
				errorReturn("422", "INVALID_THRESHOLD", "Threshold must be between 0 and 1", "Unprocessable Entity"),
				errRateLimited,
				errorReturn("502", "EXTRACTOR_FAILURE", "Face embedding model failed to process the image", "Bad Gateway"),
			}),
			bearer,
		),

		// POST /api/acquaintances/add
		endpoint.New(
			endpoint.POST,
			"/acquaintances/add",
			endpoint.WithTags("Acquaintances"),
			endpoint.WithSummary("Enroll an acquaintance"),
			endpoint.WithDescription("The image must contain exactly one face. Names are unique per user after trimming whitespace. Also served at POST /acquaintances."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(AddAcquaintanceRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AcquaintanceCreated{}, "201", "Acquaintance enrolled"),
			}),
			endpoint.WithErrors([]response.Response{
				errorReturn("400", "MISSING_FIELD", "A required field is missing", "Bad Request"),
				errUnauthorized,
				errorReturn("409", "DUPLICATE_NAME", "An acquaintance with this name already exists", "Conflict"),
				errorReturn("422", "NO_FACE_DETECTED", "No face detected in the image", "Unprocessable Entity"),
				errorReturn("422", "AMBIGUOUS_FACE", "Multiple faces detected, please provide image with single face", "Unprocessable Entity"),
				errorReturn("502", "EXTRACTOR_FAILURE", "Face embedding model failed to process the image", "Bad Gateway"),
			}),
			bearer,
		),

		// GET /api/acquaintances
		endpoint.New(
			endpoint.GET,
			"/acquaintances",
			endpoint.WithTags("Acquaintances"),
			endpoint.WithSummary("List the caller's gallery"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]Acquaintance{}, "200", "Gallery in enrollment order"),
			}),
			endpoint.WithErrors([]response.Response{errUnauthorized, errInternal}),
			bearer,
		),

		// DELETE /api/acquaintances/:id
		endpoint.New(
			endpoint.DELETE,
			"/acquaintances/{id}",
			endpoint.WithTags("Acquaintances"),
			endpoint.WithSummary("Remove an acquaintance"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Acquaintance id")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(MessageResponse{}, "200", "Acquaintance deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				errUnauthorized,
				errorReturn("404", "NOT_FOUND", "Acquaintance not found", "Not Found"),
			}),
			bearer,
		),

		// GET /api/ws
		endpoint.New(
			endpoint.GET,
			"/ws",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Live recognition socket"),
			endpoint.WithDescription(`WebSocket upgrade. Send {"type":"frame","image":"...","threshold":0.4} and receive {"type":"recognition","faces":[...],"count":n} or {"type":"error","code":"...","message":"..."}. Gallery events (acquaintance.enrolled, acquaintance.deleted) are pushed on the same socket. Browsers may pass the token as ?token=.`),
			endpoint.WithParams(
				parameter.StrParam("token", parameter.Query, parameter.WithDescription("JWT, for clients that cannot set headers")),
			),
			endpoint.WithErrors([]response.Response{errUnauthorized}),
			bearer,
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
