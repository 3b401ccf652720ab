package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	t.Run("EmptyListIsZeroNotError", func(t *testing.T) {
		count, percent := Progress(nil)
		assert.Equal(t, 0, count)
		assert.Equal(t, 0.0, percent)
	})

	t.Run("OneClosedOfFour", func(t *testing.T) {
		tasks := []Task{
			{Status: StatusClosed},
			{Status: StatusOpen},
			{Status: StatusOpen},
			{Status: StatusOpen},
		}
		count, percent := Progress(tasks)
		assert.Equal(t, 4, count)
		assert.Equal(t, 25.0, percent)
	})

	t.Run("AllClosed", func(t *testing.T) {
		count, percent := Progress([]Task{{Status: StatusClosed}})
		assert.Equal(t, 1, count)
		assert.Equal(t, 100.0, percent)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		tasks := []Task{{Status: StatusOpen}}
		Progress(tasks)
		assert.Equal(t, StatusOpen, tasks[0].Status)
	})
}

func TestParseEnums(t *testing.T) {
	t.Run("Priority", func(t *testing.T) {
		p, err := ParsePriority("medium")
		assert.NoError(t, err)
		assert.Equal(t, PriorityMedium, p)

		_, err = ParsePriority("URGENT")
		assert.Error(t, err)
		assert.Equal(t, CodeBadPriority, ValidationCode(err))
	})

	t.Run("Status", func(t *testing.T) {
		s, err := ParseStatus("CLOSED")
		assert.NoError(t, err)
		assert.Equal(t, StatusClosed, s)

		_, err = ParseStatus("DONE")
		assert.Error(t, err)
		assert.Equal(t, CodeBadStatus, ValidationCode(err))
	})
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Work"))

	err := ValidateTitle("   ")
	assert.Error(t, err)
	assert.Equal(t, CodeBlankTitle, ValidationCode(err))

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	err = ValidateTitle(string(long))
	assert.Error(t, err)
	assert.Equal(t, CodeTitleTooLong, ValidationCode(err))

	// the limit counts characters, not bytes: 200 two-byte runes fit
	assert.NoError(t, ValidateTitle(strings.Repeat("ü", 200)))
	assert.NoError(t, ValidateTitle(strings.Repeat("ü", 255)))
	err = ValidateTitle(strings.Repeat("ü", 256))
	assert.Equal(t, CodeTitleTooLong, ValidationCode(err))
}
