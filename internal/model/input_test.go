package model

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInputFromJson(t *testing.T) {
	// Arrange
	file := path.Join(t.TempDir(), "input.json")
	content := `{
		"students": [
			{"id": 0, "exam": "math"},
			{"id": 1, "exam": "art"}
		],
		"rooms": [
			{"id": "R1", "rows": 2, "cols": 3, "skipRows": true, "skipCols": false}
		],
		"restrictions": {"art": ["R1"]},
		"timeoutSeconds": 45
	}`
	assert.Nil(t, os.WriteFile(file, []byte(content), 0644))

	// Act
	input, err := InputFromJson(file)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, []Student{{ID: 0, Exam: "math"}, {ID: 1, Exam: "art"}}, input.Students)
	assert.Equal(t, []Room{{ID: "R1", Rows: 2, Cols: 3, SkipRows: true}}, input.Rooms)
	assert.Equal(t, map[string][]string{"art": {"R1"}}, input.Restrictions)
	assert.Equal(t, 45*time.Second, input.Timeout())
}

func TestTimeoutDefault(t *testing.T) {
	assert.Equal(t, time.Duration(DefaultTimeoutSeconds)*time.Second, ModelInput{}.Timeout())
	assert.Equal(t, time.Duration(DefaultTimeoutSeconds)*time.Second, ModelInput{TimeoutSeconds: -3}.Timeout())
}

func TestInputFromJsonMissingFile(t *testing.T) {
	_, err := InputFromJson("does-not-exist.json")
	assert.NotNil(t, err)
}
