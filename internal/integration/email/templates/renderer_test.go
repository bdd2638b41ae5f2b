package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type digestLine struct {
	Name            string
	Target          string
	Saved           string
	Projected       string
	ProgressPercent int
	MonthsRemaining int
	Status          string
	Advice          string
}

func TestRenderer_GoalDigest(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	data := struct {
		UserName     string
		Goals        []digestLine
		DashboardURL string
	}{
		UserName: "Asha <script>",
		Goals: []digestLine{
			{Name: "House", Target: "₹50.0 L", Saved: "₹2.0 L", Projected: "₹31.2 L", ProgressPercent: 4, MonthsRemaining: 60, Status: "Behind", Advice: "Add ₹22,000 per month"},
		},
		DashboardURL: "https://app.example.com/goals",
	}

	html, text, err := r.Render("goal_digest", data)
	require.NoError(t, err)

	assert.Contains(t, html, "Asha &lt;script&gt;", "HTML output is escaped")
	assert.Contains(t, html, "Add ₹22,000 per month")
	assert.Contains(t, text, "- House: ₹2.0 L of ₹50.0 L (4%), projected ₹31.2 L. Behind, 60 month(s) left.")
	assert.Contains(t, text, "Open your goals: https://app.example.com/goals")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, _, err = r.Render("missing", nil)
	assert.Error(t, err)
}
