package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponse_KindMapping(t *testing.T) {
	req := require.New(t)

	status, body := Response(Validation("Field require to fill", "Please fill all required fields."))
	req.Equal(http.StatusBadRequest, status)
	req.Equal("error", body.Type)
	req.Equal("Field require to fill", body.Heading)

	status, _ = Response(NotFound("Error", "Could not find User."))
	req.Equal(http.StatusNotFound, status)

	status, _ = Response(Persistence("Something went wrong.", errors.New("boom")))
	req.Equal(http.StatusInternalServerError, status)
}

func TestKindOf_WrappedError(t *testing.T) {
	req := require.New(t)

	wrapped := fmt.Errorf("handling request: %w", Validation("Error", "bad input"))

	req.Equal(KindValidation, KindOf(wrapped))
	req.Equal(KindUnknown, KindOf(errors.New("plain")))
}

func TestResponse_PlainError(t *testing.T) {
	req := require.New(t)

	status, body := Response(errors.New("boom"))

	req.Equal(http.StatusInternalServerError, status)
	req.Contains(body.Message, "Something went wrong")
}
