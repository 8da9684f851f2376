package service

import (
	"testing"

	"pitchday/repository"

	"github.com/stretchr/testify/assert"
)

func TestApplyJudgeUpdatePreservesActiveWhenOmitted(t *testing.T) {
	judge := &repository.Judge{Name: "Ada", Phone: "111", Active: false}

	applyJudgeUpdate(judge, &JudgeUpdate{Phone: "222"})

	assert.Equal(t, "222", judge.Phone)
	assert.False(t, judge.Active, "editing contact details must not re-activate a revoked judge")
}

func TestApplyJudgeUpdateSetsActiveWhenSent(t *testing.T) {
	active := true
	judge := &repository.Judge{Name: "Ada", Active: false}

	applyJudgeUpdate(judge, &JudgeUpdate{Active: &active})
	assert.True(t, judge.Active)

	inactive := false
	applyJudgeUpdate(judge, &JudgeUpdate{Active: &inactive})
	assert.False(t, judge.Active)
}

func TestApplyJudgeUpdateIgnoresEmptyFields(t *testing.T) {
	judge := &repository.Judge{Name: "Ada", Organization: "Org", Email: "a@b.c"}

	applyJudgeUpdate(judge, &JudgeUpdate{Name: "Grace"})

	assert.Equal(t, "Grace", judge.Name)
	assert.Equal(t, "Org", judge.Organization)
	assert.Equal(t, "a@b.c", judge.Email)
}
