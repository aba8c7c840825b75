package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"alfredoptarigan/cv-warehouse/internal/client"
	"alfredoptarigan/cv-warehouse/internal/models"
)

var _ = Describe("collaborator client", func() {
	var (
		ctx    context.Context
		server *httptest.Server
		c      *client.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
	})

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	serve := func(h http.HandlerFunc) {
		server = httptest.NewServer(h)
		c = client.New(server.URL, 5*time.Second)
	}

	Describe("Analyze", func() {
		It("uploads the file as a single multipart field", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/analyze"))

				file, header, err := r.FormFile("file")
				Expect(err).NotTo(HaveOccurred())
				defer file.Close()
				Expect(header.Filename).To(Equal("cv.txt"))
				content, _ := io.ReadAll(file)
				Expect(string(content)).To(Equal("Ada Lovelace"))
				Expect(r.MultipartForm.File).To(HaveLen(1))

				_ = json.NewEncoder(w).Encode(map[string]any{
					"filename": "cv.txt",
					"is_cv":    true,
					"cv_data":  map[string]any{"first_name": "Ada", "last_name": "Lovelace"},
				})
			})

			resp, err := c.Analyze(ctx, "cv.txt", strings.NewReader("Ada Lovelace"))

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsCV).To(BeTrue())
			Expect(resp.CVData.FullName()).To(Equal("Ada Lovelace"))
			Expect(resp.CVData.Skills).NotTo(BeNil())
		})

		It("returns the rejection with the default reason when none is given", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"filename":"recipe.txt","is_cv":false}`))
			})

			resp, err := c.Analyze(ctx, "recipe.txt", strings.NewReader("flour"))

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsCV).To(BeFalse())
			Expect(resp.Reason()).To(Equal(models.DefaultRejectionReason))
		})

		It("surfaces the collaborator detail on failure", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"detail":"Failed to extract CV data from the document."}`))
			})

			_, err := c.Analyze(ctx, "cv.pdf", strings.NewReader("%PDF"))

			var apiErr *client.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(client.DetailOf(err)).To(Equal("Failed to extract CV data from the document."))
		})

		It("treats an accepted document without cv_data as malformed", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"is_cv":true}`))
			})

			_, err := c.Analyze(ctx, "cv.pdf", strings.NewReader("x"))

			Expect(errors.Is(err, client.ErrMalformedPayload)).To(BeTrue())
			Expect(client.DetailOf(err)).To(BeEmpty())
		})

		It("treats an undecodable body as malformed", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			})

			_, err := c.Analyze(ctx, "cv.pdf", strings.NewReader("x"))

			Expect(errors.Is(err, client.ErrMalformedPayload)).To(BeTrue())
		})
	})

	Describe("warehouse", func() {
		It("passes the free-text query as q", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodGet))
				Expect(r.URL.Path).To(Equal("/cvs"))
				Expect(r.URL.Query().Get("q")).To(Equal("go dev"))
				_, _ = w.Write([]byte(`[{"id":"1","filename":"a.pdf","first_name":"Ada","last_name":"L","summary":"s"}]`))
			})

			entries, err := c.ListEntries(ctx, "go dev")

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].DisplayName()).To(Equal("Ada L"))
		})

		It("omits q when the query is empty", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.RawQuery).To(BeEmpty())
				_, _ = w.Write([]byte(`[]`))
			})

			entries, err := c.ListEntries(ctx, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("fetches one entry by id", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/cvs/abc"))
				_, _ = w.Write([]byte(`{"id":"abc","filename":"a.pdf","first_name":"Ada","skills":["Go"]}`))
			})

			entry, err := c.GetEntry(ctx, "abc")

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.Skills).To(Equal([]string{"Go"}))
		})

		It("reports a missing entry", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"detail":"CV not found"}`))
			})

			_, err := c.GetEntry(ctx, "missing")

			Expect(client.DetailOf(err)).To(Equal("CV not found"))
		})

		It("deletes with the DELETE verb", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodDelete))
				Expect(r.URL.Path).To(Equal("/cvs/abc"))
				_, _ = w.Write([]byte(`{"status":"success","message":"CV abc deleted"}`))
			})

			Expect(c.DeleteEntry(ctx, "abc")).To(Succeed())
		})
	})

	Describe("SmartSearch", func() {
		It("posts the query as JSON and decodes results", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/search/smart"))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))

				var req models.SmartSearchRequest
				Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
				Expect(req.Query).To(Equal("senior go engineer"))

				_, _ = w.Write([]byte(`{"results":[{"id":"1","filename":"a.pdf","cv":{"first_name":"Ada"},"match_reason":"Go","match_score":92}]}`))
			})

			results, err := c.SmartSearch(ctx, "senior go engineer")

			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].MatchScore).To(Equal(92))
		})

		It("returns an APIError on non-2xx", func() {
			serve(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			})

			_, err := c.SmartSearch(ctx, "anything")

			var apiErr *client.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Detail).To(BeEmpty())
		})
	})

	It("fails fast on an invalid base URL", func() {
		c = client.New("http://[invalid-url", time.Second)

		_, err := c.ListEntries(ctx, "")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to create request"))
	})
})
