package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/identity-service/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("should match sentinels through wrapping", func() {
		err := fmt.Errorf("lookup: %w", internal.ErrUserNotFound)
		Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeFalse())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
	})

	It("should keep the cause out of the wire body", func() {
		appErr := internal.NewWriteError("Failed to create user", errors.New("disk full"))
		Expect(appErr.Error()).To(ContainSubstring("disk full"))
		Expect(errors.Unwrap(appErr)).To(MatchError("disk full"))

		status, body := appErr.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusInternalServerError))
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(MatchJSON(`{"error":{"type":"WRITE_ERROR","code":"WRITE_FAILED","message":"Failed to create user"}}`))
	})

	It("should describe field errors by their message", func() {
		appErr := internal.NewValidationFieldError("userType", "userType must be 1, 2 or 3", internal.ErrCodeInvalidUserType)
		Expect(appErr.Error()).To(Equal("userType must be 1, 2 or 3"))
		Expect(appErr.GetDetailedMessage()).To(Equal("userType must be 1, 2 or 3"))
	})

	It("should not mutate the receiver in WithCause", func() {
		wrapped := internal.ErrUserNotFound.WithCause(errors.New("gone"))
		Expect(internal.ErrUserNotFound.Cause).To(BeNil())
		Expect(errors.Is(wrapped, internal.ErrUserNotFound)).To(BeTrue())
	})
})
