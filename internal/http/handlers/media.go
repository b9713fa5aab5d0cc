package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dna-dashboard/internal/media"
)

// multipartOverhead leaves room for the form fields around the file part.
const multipartOverhead = 1 << 20

type deleteRequest struct {
	Key string `json:"key" validate:"required"`
}

type presignRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	MimeType string `json:"mimeType" validate:"required"`
	Purpose  string `json:"purpose"`
}

func UploadMediaHandler(store media.Store, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusBadRequest, media.TooLargeError(maxBytes).Error())
				return
			}
			writeError(w, http.StatusBadRequest, "Request must be a multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file found in the request")
			return
		}
		defer file.Close()

		mimeType := header.Header.Get("Content-Type")
		if err := media.Validate(header.Size, mimeType, maxBytes); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		purpose := media.Purpose(r.FormValue("purpose"))
		if purpose == "" {
			purpose = media.PurposeBackground
		}
		log.Info("Uploading media file", "filename", header.Filename, "size", header.Size, "purpose", purpose)

		uploaded, err := store.Upload(r.Context(), file, header.Size, mimeType, header.Filename, purpose)
		if err != nil {
			if errors.Is(err, media.ErrFileTooLarge) || errors.Is(err, media.ErrUnsupportedType) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeUpstreamError(w, "uploading file", err)
			return
		}
		writeData(w, uploaded)
	}
}

func ListMediaHandler(store media.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := store.List(r.Context())
		if err != nil {
			writeUpstreamError(w, "listing media", err)
			return
		}
		writeData(w, files)
	}
}

func DeleteMediaHandler(store media.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Request body must be JSON with the key to delete")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		if err := store.Delete(r.Context(), req.Key); err != nil {
			writeUpstreamError(w, "deleting file", err)
			return
		}
		writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "File deleted"})
	}
}

func PresignUploadHandler(store media.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req presignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Request body must be a JSON object")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		up, err := store.PresignUpload(r.Context(), req.Filename, req.MimeType, media.Purpose(req.Purpose))
		if err != nil {
			if errors.Is(err, media.ErrUnsupportedType) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeUpstreamError(w, "generating presigned URL", err)
			return
		}
		writeData(w, up)
	}
}
