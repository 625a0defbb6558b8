package source

import (
	"testing"

	"jobradar-engine/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Senior Engineer", CleanText("  Senior\n  Engineer  "))
	assert.Equal(t, "Acme Corp", CleanText("Acme Corp"))
	assert.Equal(t, "", CleanText("   "))
}

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "Austin, TX", NormalizeLocation("Location: Austin , TX"))
	assert.Equal(t, "Remote, US", NormalizeLocation("Remote, remote, US"))
	assert.Equal(t, "", NormalizeLocation("  "))
}

func TestInferArrangement(t *testing.T) {
	assert.Equal(t, domain.ArrangementRemote, InferArrangement("Remote (US)", "", ""))
	assert.Equal(t, domain.ArrangementHybrid, InferArrangement("", "Hybrid Engineer", ""))
	assert.Equal(t, domain.ArrangementOnsite, InferArrangement("", "", "This role is on-site in Austin"))
	assert.Equal(t, domain.ArrangementUnknown, InferArrangement("Austin, TX", "Engineer", "Great team"))
}

func TestExtractSalary(t *testing.T) {
	assert.Equal(t, "$150k", ExtractSalary("comp is $150k plus equity"))
	assert.Equal(t, "$120,000 - $150,000", ExtractSalary("range $120,000 - $150,000 DOE"))
	assert.Equal(t, "$60/hr", ExtractSalary("paying $60/hr on contract"))
	assert.Equal(t, "", ExtractSalary("competitive compensation"))
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "jobs@acme.io", ExtractEmail("send a resume to jobs@acme.io today"))
	assert.Equal(t, "", ExtractEmail("apply on our website"))
}
