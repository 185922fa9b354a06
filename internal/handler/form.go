package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cardvault/internal/domain"
)

// maxFormMemory bounds multipart parsing; large photo parts spill to
// temp files. The 5 MiB photo limit itself is enforced by the photo
// service before any write.
const maxFormMemory = 8 << 20

// photoPart holds an uploaded photo read out of a multipart form.
type photoPart struct {
	name string
	data []byte
}

// decodeCardInput reads a CardInput from either a multipart form (the
// browser upload path, scalar fields plus JSON-encoded sub-fields and an
// optional photo part) or a plain JSON body.
func (h *CardHandler) decodeCardInput(r *http.Request) (domain.CardInput, *photoPart, error) {
	if !isMultipart(r) {
		var input domain.CardInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return input, nil, fmt.Errorf("invalid request body: %w", err)
		}
		input.Name = strings.TrimSpace(input.Name)
		return input, nil, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return domain.CardInput{}, nil, fmt.Errorf("bad multipart form: %w", err)
	}

	input := domain.CardInput{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Title:   strings.TrimSpace(r.FormValue("title")),
		Company: strings.TrimSpace(r.FormValue("company")),
		Website: strings.TrimSpace(r.FormValue("website")),
		Notes:   strings.TrimSpace(r.FormValue("notes")),
	}

	if v := r.FormValue("phones"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Phones); err != nil {
			return input, nil, fmt.Errorf("invalid phones field: %w", err)
		}
	}
	if v := r.FormValue("emails"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Emails); err != nil {
			return input, nil, fmt.Errorf("invalid emails field: %w", err)
		}
	}
	if v := r.FormValue("addresses"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Addresses); err != nil {
			return input, nil, fmt.Errorf("invalid addresses field: %w", err)
		}
	}
	if v := r.FormValue("tags"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Tags); err != nil {
			return input, nil, fmt.Errorf("invalid tags field: %w", err)
		}
	}

	photo, err := readPhotoPart(r)
	if err != nil {
		return input, nil, err
	}
	return input, photo, nil
}

// readPhotoPart extracts the optional "photo" part from a multipart
// form. Returns (nil, nil) when no photo was sent.
func readPhotoPart(r *http.Request) (*photoPart, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("bad multipart form: %w", err)
		}
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		// Absent photo part is fine.
		return nil, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return &photoPart{name: header.Filename, data: data}, nil
}
