package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"go.uber.org/zap"
)

// maxMemory is how much of a multipart form is held in memory before
// spilling to disk
const maxMemory = 8 << 20

// MatchForm holds the non-file fields of a POST /match request
type MatchForm struct {
	ResumeFilename string `form:"resume" validate:"required,max=255"`
	JDText         string `form:"jd_text"`
	JDURL          string `form:"jd_url" validate:"omitempty,url"`
	UseSemantic    string `form:"use_semantic"`
	Explain        string `form:"explain" validate:"omitempty,boolean"`
}

// Semantic reads use_semantic: empty means true, otherwise only "true" is true
func (f MatchForm) Semantic() bool {
	v := strings.ToLower(strings.TrimSpace(f.UseSemantic))
	return v == "" || v == "true"
}

// WantsExplanation reports whether the explanation block was requested
func (f MatchForm) WantsExplanation() bool {
	switch strings.ToLower(strings.TrimSpace(f.Explain)) {
	case "1", "t", "true":
		return true
	}
	return false
}

// handleMatch scores an uploaded resume against a job description given as
// jd_text, an uploaded jd_file or a jd_url.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.UploadLimit)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		s.errorResponse(w, r, status, "invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	resumeFile, resumeHeader, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, r, http.StatusBadRequest, "resume file is required")
		return
	}
	defer func() { _ = resumeFile.Close() }()

	form := MatchForm{
		ResumeFilename: filepath.Base(resumeHeader.Filename),
		JDText:         r.FormValue("jd_text"),
		JDURL:          strings.TrimSpace(r.FormValue("jd_url")),
		UseSemantic:    r.FormValue("use_semantic"),
		Explain:        r.FormValue("explain"),
	}
	if resumeHeader.Filename == "" || form.ResumeFilename == "." || form.ResumeFilename == string(filepath.Separator) {
		s.errorResponse(w, r, http.StatusBadRequest, "resume file is empty")
		return
	}
	if err := s.validator.Struct(form); err != nil {
		verr := validationError(err)
		s.errorResponse(w, r, HTTPStatus(verr), verr.Error())
		return
	}

	resumePath, cleanup, err := s.saveUpload(resumeFile, form.ResumeFilename)
	if err != nil {
		s.internalError(w, r, "failed to store resume upload", err)
		return
	}
	defer cleanup()
	log.Debug("saved resume upload", zap.String("filename", form.ResumeFilename), zap.Int64("bytes", resumeHeader.Size))

	req := pipeline.Request{
		ResumePath:  resumePath,
		JDText:      form.JDText,
		JDURL:       form.JDURL,
		UseSemantic: form.Semantic(),
		Explain:     form.WantsExplanation(),
	}

	if jdFile, jdHeader, err := r.FormFile("jd_file"); err == nil {
		defer func() { _ = jdFile.Close() }()
		if jdHeader.Filename != "" {
			jdPath, jdCleanup, err := s.saveUpload(jdFile, filepath.Base(jdHeader.Filename))
			if err != nil {
				s.internalError(w, r, "failed to store job description upload", err)
				return
			}
			defer jdCleanup()
			req.JDPath = jdPath
		}
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	resp, err := s.matcher.Match(ctx, req)
	switch {
	case errors.Is(err, pipeline.ErrEmptyJobDescription):
		s.errorResponse(w, r, http.StatusBadRequest, "Provide jd_text or jd_file")
		return
	case err != nil && HTTPStatus(err) != http.StatusInternalServerError:
		s.errorResponse(w, r, HTTPStatus(err), err.Error())
		return
	case err != nil:
		s.internalError(w, r, "match failed", err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, resp)
}

// internalError logs err and writes a generic 500 body
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.requestLogger(r).Error(msg, zap.Error(err))
	s.errorResponse(w, r, http.StatusInternalServerError, "internal_server_error")
}

// saveUpload copies an upload to a temporary file that keeps the original
// extension, since text extraction dispatches on it.
func (s *Server) saveUpload(src multipart.File, filename string) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if strings.ContainsAny(ext, `*/\`) {
		ext = ""
	}

	dst, err := os.CreateTemp(s.cfg.UploadDir, "upload-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(dst.Name()) }

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close upload: %w", err)
	}
	return dst.Name(), cleanup, nil
}
