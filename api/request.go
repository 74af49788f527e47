package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/i18n"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

// formOverhead is the room left for the text fields of a multipart body on top of the image limit.
const formOverhead = 1 << 20

// projectPayload is the JSON form of a create or update request. Image data is base64.
type projectPayload struct {
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	TypeID       *string       `json:"type_id"`
	Technologies []string      `json:"technologies"`
	Image        *imagePayload `json:"image"`
}

type imagePayload struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// rawProjectForm is a request body before ids are parsed.
type rawProjectForm struct {
	title        string
	content      string
	typeID       string
	technologies []string
	image        *services.Upload
}

// projectInputParser turns multipart, urlencoded or JSON bodies into a services.ProjectInput.
type projectInputParser struct {
	maxUploadBytes int64
	messages       *i18n.Bundle
}

func (p projectInputParser) parse(w http.ResponseWriter, r *http.Request) (services.ProjectInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, p.maxUploadBytes+formOverhead)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	var raw rawProjectForm
	switch mediaType {
	case "multipart/form-data":
		raw, err = p.parseMultipart(r)
	case "application/json":
		raw, err = p.parseJSON(r)
	default:
		raw, err = p.parseURLEncoded(r)
	}
	if err != nil {
		return services.ProjectInput{}, err
	}

	return p.toInput(r, raw)
}

func (p projectInputParser) parseMultipart(r *http.Request) (rawProjectForm, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return rawProjectForm{}, p.bodyError("multipart", err)
	}

	raw := formValues(r.MultipartForm.Value)

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return raw, nil
	case err != nil:
		return rawProjectForm{}, p.bodyError("multipart", err)
	}
	defer file.Close()

	upload, err := p.readUpload(file, header)
	if err != nil {
		return rawProjectForm{}, err
	}
	raw.image = upload
	return raw, nil
}

func (p projectInputParser) parseURLEncoded(r *http.Request) (rawProjectForm, error) {
	if err := r.ParseForm(); err != nil {
		return rawProjectForm{}, p.bodyError("form", err)
	}
	return formValues(r.PostForm), nil
}

func (p projectInputParser) parseJSON(r *http.Request) (rawProjectForm, error) {
	var payload projectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return rawProjectForm{}, p.bodyError("json", err)
	}

	raw := rawProjectForm{
		title:        payload.Title,
		content:      payload.Content,
		technologies: payload.Technologies,
	}
	if payload.TypeID != nil {
		raw.typeID = *payload.TypeID
	}
	if payload.Image != nil && len(payload.Image.Data) > 0 {
		raw.image = &services.Upload{Filename: payload.Image.Filename, Content: payload.Image.Data}
	}
	return raw, nil
}

func (p projectInputParser) readUpload(file multipart.File, header *multipart.FileHeader) (*services.Upload, error) {
	// One byte past the limit is enough for the size rule to fire.
	content, err := io.ReadAll(io.LimitReader(file, p.maxUploadBytes+1))
	if err != nil {
		return nil, p.bodyError("multipart", err)
	}
	return &services.Upload{Filename: header.Filename, Content: content}, nil
}

func (p projectInputParser) bodyError(payloadType string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.NewMaxBodySizeExceededError(tooLarge.Limit)
	}
	return errs.NewMalformedPayloadError(payloadType, err)
}

// toInput parses the ids. A malformed id cannot reference a stored row, so it
// fails the same exists rule an unknown id would.
func (p projectInputParser) toInput(r *http.Request, raw rawProjectForm) (services.ProjectInput, error) {
	input := services.ProjectInput{
		Title:   raw.title,
		Content: raw.content,
		Image:   raw.image,
	}

	var failures []errs.FieldError
	if typeID := strings.TrimSpace(raw.typeID); typeID != "" {
		id, err := uuid.Parse(typeID)
		if err != nil {
			failures = append(failures, p.existsFailure(r, "type_id"))
		} else {
			input.TypeID = &id
		}
	}

	for _, value := range raw.technologies {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		id, err := uuid.Parse(value)
		if err != nil {
			failures = append(failures, p.existsFailure(r, "technologies"))
			break
		}
		input.Technologies = append(input.Technologies, id)
	}

	if len(failures) > 0 {
		return services.ProjectInput{}, errs.NewValidationError(failures)
	}
	return input, nil
}

func (p projectInputParser) existsFailure(r *http.Request, field string) errs.FieldError {
	return errs.FieldError{
		Field:   field,
		Rule:    "exists",
		Message: p.messages.Sprintf(r.Context(), "validation."+field+".exists"),
	}
}

// formValues reads the text fields. Technologies may be sent as technologies or technologies[].
func formValues(values url.Values) rawProjectForm {
	technologies := append([]string{}, values["technologies"]...)
	technologies = append(technologies, values["technologies[]"]...)

	return rawProjectForm{
		title:        values.Get("title"),
		content:      values.Get("content"),
		typeID:       values.Get("type_id"),
		technologies: technologies,
	}
}
