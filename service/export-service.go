package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"pitchday/repository"
	"pitchday/scoring"
	"pitchday/utils"

	"gorm.io/gorm"
)

// ExportService flattens the judging data into a tabular report: one row
// per team, with judge column groups sized to the maximum number of judges
// who evaluated any single team.
type ExportService struct {
	teamRepository       *repository.TeamRepository
	evaluationRepository *repository.EvaluationRepository
	criterionRepository  *repository.CriterionRepository
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{
		teamRepository:       repository.NewTeamRepository(db),
		evaluationRepository: repository.NewEvaluationRepository(db),
		criterionRepository:  repository.NewCriterionRepository(db),
	}
}

func (e *ExportService) WriteResultsCSV(w io.Writer) error {
	criteria, err := e.criterionRepository.FindAll()
	if err != nil {
		return err
	}
	teams, err := e.teamRepository.FindAll()
	if err != nil {
		return err
	}
	evaluations, err := e.evaluationRepository.FindAll("", 0)
	if err != nil {
		return err
	}

	byTeam := make(map[string][]*repository.Evaluation)
	for _, evaluation := range evaluations {
		byTeam[evaluation.TeamNum] = append(byTeam[evaluation.TeamNum], evaluation)
	}
	for _, teamEvals := range byTeam {
		sort.SliceStable(teamEvals, func(i, j int) bool {
			return judgeName(teamEvals[i]) < judgeName(teamEvals[j])
		})
	}
	maxJudges := 0
	if len(byTeam) > 0 {
		maxJudges = utils.Max(utils.Map(utils.Values(byTeam), func(teamEvals []*repository.Evaluation) int {
			return len(teamEvals)
		}))
	}

	matcher := scoring.NewCriterionMatcher(criteria)

	writer := csv.NewWriter(w)
	header := []string{"num_equipe", "nom_equipe", "avg_score"}
	for judgeNum := 1; judgeNum <= maxJudges; judgeNum++ {
		header = append(header, fmt.Sprintf("judge_%d_name", judgeNum))
		for _, criterion := range criteria {
			header = append(header, fmt.Sprintf("judge_%d_%s_score", judgeNum, criterion.Name))
		}
		header = append(header, fmt.Sprintf("judge_%d_general_comment", judgeNum))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, team := range teams {
		teamEvals := byTeam[team.NumEquipe]
		row := []string{team.NumEquipe, team.NomEquipe, formatScore(teamAverage(teamEvals))}
		for _, evaluation := range teamEvals {
			row = append(row, judgeName(evaluation))
			for _, criterion := range criteria {
				row = append(row, criterionScore(matcher, criterion, evaluation.Scores))
			}
			row = append(row, evaluation.GeneralComment)
		}
		// pad to the widest judge group
		for i := len(teamEvals); i < maxJudges; i++ {
			row = append(row, "")
			for range criteria {
				row = append(row, "")
			}
			row = append(row, "")
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func judgeName(evaluation *repository.Evaluation) string {
	if evaluation.Judge != nil {
		return evaluation.Judge.Name
	}
	return ""
}

func teamAverage(evaluations []*repository.Evaluation) float64 {
	if len(evaluations) == 0 {
		return 0
	}
	sum := 0.0
	for _, evaluation := range evaluations {
		sum += evaluation.Total
	}
	return scoring.Round2(sum / float64(len(evaluations)))
}

// criterionScore finds the first submitted entry matching the criterion;
// keys are scanned in sorted order for a deterministic pick.
func criterionScore(matcher *scoring.CriterionMatcher, criterion *repository.Criterion, scores repository.ScoreMap) string {
	keys := utils.Keys(scores)
	sort.Strings(keys)
	for _, key := range keys {
		if matcher.MatchesName(criterion.Name, key) {
			return formatScore(scores[key].Score)
		}
	}
	return ""
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
