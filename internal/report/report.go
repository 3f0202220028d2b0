// Package report renders graded results and streak status for the terminal.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexis/internal/analytics"
	"github.com/abhisek/lexis/internal/daily"
	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/grading"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 72

// Result renders a graded result: score line, per-question marks and the
// three analytics blocks.
func Result(res *grading.Result, width int) string {
	if res == nil {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	// border and padding
	inner := width - 4

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Score %d/%d", res.TotalScore, res.MaxScore)))
	b.WriteString("  ")
	b.WriteString(bodyStyle.Render(fmt.Sprintf("%.1f%%  band %s", res.Percentage, res.Band)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("(%s)", res.Source)))
	b.WriteString("\n")
	if res.Summary != "" {
		b.WriteString(dimStyle.Render(res.Summary))
		b.WriteString("\n")
	}

	b.WriteString(section("Questions", inner))
	for _, q := range res.Questions {
		b.WriteString(questionLine(q))
		b.WriteString("\n")
	}

	b.WriteString(section("Skills", inner))
	for _, skill := range exercise.AllSkills() {
		s, ok := res.Skills[skill]
		if !ok {
			continue
		}
		b.WriteString(Bar(fmt.Sprintf("%-10s", skill), s.Percentage, inner-len(s.Feedback)-2))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(s.Feedback))
		b.WriteString("\n")
	}

	b.WriteString(section("Cognitive levels", inner))
	for _, level := range exercise.AllCognitiveLevels() {
		c, ok := res.CognitiveLevels[level]
		if !ok {
			continue
		}
		label := fmt.Sprintf("%-10s %d/%d", level, c.Correct, c.Total)
		b.WriteString(Bar(label, analytics.Percent(c.Correct, c.Total), inner))
		b.WriteString("\n")
	}

	if len(res.Vocabulary) > 0 {
		b.WriteString(section("Vocabulary", inner))
		for _, w := range res.Vocabulary {
			b.WriteString(masteryLine(w))
			b.WriteString("\n")
		}
	}

	return cardStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// Streak renders the streak card.
func Streak(st daily.StreakState) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Streak %d", st.Streak)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  best %d  completed %d", st.BestStreak, st.TotalCompleted)))
	b.WriteString("\n")
	if st.IsTodayCompleted {
		b.WriteString(correctStyle.Render("Today's challenge is done."))
	} else {
		b.WriteString(bodyStyle.Render("Today's challenge is waiting."))
	}
	b.WriteString("\n")
	if st.LastScore != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Last score %.1f%%", *st.LastScore)))
		b.WriteString("\n")
	}
	b.WriteString(bodyStyle.Render(daily.Motivation(st.Streak)))
	return cardStyle.Render(b.String())
}

// Exercise renders the questions of ex for answering at a prompt.
func Exercise(ex *exercise.Exercise) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(ex.Title))
	b.WriteString("\n")
	for _, s := range ex.Sections {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render(s.Title))
		b.WriteString("\n")
		if s.Instructions != "" {
			b.WriteString(dimStyle.Render(s.Instructions))
			b.WriteString("\n")
		}
		if s.Content != "" {
			b.WriteString(bodyStyle.Render(s.Content))
			b.WriteString("\n")
		}
		for _, q := range s.Questions {
			b.WriteString(Question(q))
		}
	}
	return b.String()
}

// Question renders one question with its options.
func Question(q exercise.Question) string {
	var b strings.Builder
	b.WriteString(bodyStyle.Render(fmt.Sprintf("%s. %s", q.ID, q.Prompt)))
	b.WriteString("\n")
	for i, opt := range q.Options {
		b.WriteString(dimStyle.Render(fmt.Sprintf("   %c) %s", 'a'+rune(i), opt)))
		b.WriteString("\n")
	}
	return b.String()
}

func section(title string, width int) string {
	rule := strings.Repeat("─", max(min(width-len(title)-4, 60), 4))
	return "\n" + headingStyle.Render(title) + " " + lipgloss.NewStyle().Foreground(Border).Render(rule) + "\n"
}

func questionLine(q grading.QuestionResult) string {
	mark := correctStyle.Render("✓")
	if !q.IsCorrect {
		mark = incorrectStyle.Render("✗")
	}
	answer := "(no answer)"
	if q.StudentAnswer != nil {
		answer = q.StudentAnswer.String()
	}
	line := fmt.Sprintf(" %s %-4s %d/%d  %s", mark, q.QuestionID, q.Score, q.MaxScore, answer)
	if !q.IsCorrect && q.Feedback != "" {
		line += "  " + dimStyle.Render(q.Feedback)
	}
	return line
}

var masteryOrder = []analytics.Mastery{
	analytics.MasteryMastered,
	analytics.MasteryLearning,
	analytics.MasteryNeedsReview,
}

func masteryLine(w analytics.WordMastery) string {
	style := dimStyle
	switch w.Mastery {
	case analytics.MasteryMastered:
		style = correctStyle
	case analytics.MasteryNeedsReview:
		style = incorrectStyle
	}
	return fmt.Sprintf(" %-16s %d/%d  %s", w.Word, w.QuestionsCorrect, w.QuestionsTotal, style.Render(string(w.Mastery)))
}

// MasterySummary returns counts per mastery class in display order,
// e.g. "3 mastered, 1 learning, 0 needs_review".
func MasterySummary(words []analytics.WordMastery) string {
	counts := analytics.CountByMastery(words)
	parts := make([]string, 0, len(masteryOrder))
	for _, m := range masteryOrder {
		parts = append(parts, fmt.Sprintf("%d %s", counts[m], m))
	}
	return strings.Join(parts, ", ")
}
