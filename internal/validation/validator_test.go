package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

type createSessionInput struct {
	MediaName string `json:"mediaName" validate:"required"`
	UserID    string `json:"userId"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()
	err := v.Validate(createSessionInput{MediaName: "shelf.jpg"})
	assert.NoError(t, err)
}

func TestValidate_RequiredField(t *testing.T) {
	v := New()
	err := v.Validate(createSessionInput{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Field errors use the JSON tag name.
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["mediaName"])
}

func TestValidate_RangeTags(t *testing.T) {
	type scored struct {
		Score int `json:"score" validate:"gte=0,lte=100"`
	}

	v := New()
	assert.NoError(t, v.Validate(scored{Score: 85}))

	err := v.Validate(scored{Score: 150})
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be less than or equal to 100", details["score"])
}
