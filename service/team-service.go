package service

import (
	"errors"
	"fmt"

	"pitchday/app_error"
	"pitchday/parser"
	"pitchday/repository"
	"pitchday/utils"

	"gorm.io/gorm"
)

type TeamService struct {
	teamRepository *repository.TeamRepository
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		teamRepository: repository.NewTeamRepository(db),
	}
}

func (e *TeamService) GetTeams() ([]*repository.Team, error) {
	return e.teamRepository.FindAll()
}

func (e *TeamService) GetTeamByNum(numEquipe string) (*repository.Team, error) {
	team, err := e.teamRepository.GetTeamByNum(numEquipe)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.NotFound("team %s not found", numEquipe)
	}
	return team, err
}

func (e *TeamService) SaveTeam(team *repository.Team) (*repository.Team, error) {
	return e.teamRepository.Save(team)
}

func (e *TeamService) DeleteTeam(numEquipe string) error {
	err := e.teamRepository.Delete(numEquipe)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return app_error.NotFound("team %s not found", numEquipe)
	}
	return err
}

type ImportResult struct {
	PreviewRows    []parser.TeamRow `json:"preview_rows,omitempty"`
	Created        []parser.TeamRow `json:"created,omitempty"`
	Errors         []string         `json:"errors"`
	Warnings       []string         `json:"warnings,omitempty"`
	DuplicateCount int              `json:"duplicate_count"`
	SkippedCount   int              `json:"skipped_count"`
}

// ImportTeams applies an idempotent upsert keyed on num_equipe. Duplicates
// within the file or against existing storage are skipped and reported as
// a warning, never an error. With commit=false the import is only
// previewed.
func (e *TeamService) ImportTeams(parsed *parser.TeamParseResult, commit bool) (*ImportResult, error) {
	existing, err := e.teamRepository.ExistingNums()
	if err != nil {
		return nil, err
	}

	rows := utils.Filter(parsed.Rows, func(row parser.TeamRow) bool {
		return !existing[row.NumEquipe]
	})
	duplicates := parsed.DuplicateCount + len(parsed.Rows) - len(rows)

	result := &ImportResult{
		Errors:         append([]string{}, parsed.Errors...),
		DuplicateCount: duplicates,
	}
	if duplicates > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d duplicate team number(s) found, only the first occurrence of each is kept", duplicates))
	}

	if !commit {
		result.PreviewRows = rows
		return result, nil
	}

	result.Created = make([]parser.TeamRow, 0, len(rows))
	for _, row := range rows {
		created, err := e.teamRepository.CreateIfAbsent(&repository.Team{
			NumEquipe: row.NumEquipe,
			NomEquipe: row.NomEquipe,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to create team %s: %v", row.NumEquipe, err))
			continue
		}
		if !created {
			result.SkippedCount++
			continue
		}
		result.Created = append(result.Created, row)
	}
	return result, nil
}
