package resolve

import (
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Scorer rates how well pattern matches candidate as an ordered subsequence.
// A higher score is a better match. ok is false when no alignment exists.
type Scorer interface {
	Score(candidate, pattern string) (score int, ok bool)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(candidate, pattern string) (int, bool)

// Score calls f.
func (f ScorerFunc) Score(candidate, pattern string) (int, bool) {
	return f(candidate, pattern)
}

// Scoring weights. Gap and bonus values are derived from the match score
// the same way skim and fzf derive them.
const (
	scoreMatch               = 16
	scoreGapStart            = -3
	scoreGapExtension        = -1
	bonusHead                = scoreMatch / 2
	bonusBreak               = scoreMatch/2 + scoreGapExtension
	bonusCamel               = scoreMatch/2 + 2*scoreGapExtension
	bonusConsecutive         = -(scoreGapStart + scoreGapExtension)
	bonusFirstCharMultiplier = 2
	penaltyCaseMismatch      = 2 * scoreGapExtension
)

const minScore = -1 << 30

// SkimScorer is a Smith-Waterman style subsequence scorer. Matches that
// start words, follow separators or camel-case humps, or run consecutively
// score higher; gaps between matched runes cost points.
type SkimScorer struct {
	// RespectCase disables smart case. With smart case (the default), a
	// pattern without upper-case runes matches case-insensitively.
	RespectCase bool
}

// NewSkimScorer returns a SkimScorer with smart case enabled.
func NewSkimScorer() *SkimScorer {
	return &SkimScorer{}
}

// Score implements Scorer.
func (s *SkimScorer) Score(candidate, pattern string) (int, bool) {
	if pattern == "" {
		return 0, true
	}

	fold := !s.RespectCase && !hasUpper(pattern)
	if fold {
		if !fuzzy.MatchFold(pattern, candidate) {
			return 0, false
		}
	} else if !fuzzy.Match(pattern, candidate) {
		return 0, false
	}

	c := []rune(candidate)
	p := []rune(pattern)
	n, m := len(c), len(p)
	if m > n {
		return 0, false
	}

	bonus := make([]int, n)
	for j := range c {
		bonus[j] = positionBonus(c, j)
	}

	prev := make([]int, n)
	cur := make([]int, n)
	for i := 0; i < m; i++ {
		for j := range cur {
			cur[j] = minScore
		}
		// gapBest(j) = max over k <= j-2 of prev[k] + gap cost for j-k-1 skipped runes.
		gapBest := minScore
		for j := i; j < n; j++ {
			if i > 0 && j >= 2 {
				if gapBest > minScore {
					gapBest += scoreGapExtension
				}
				if prev[j-2] > minScore && prev[j-2]+scoreGapStart > gapBest {
					gapBest = prev[j-2] + scoreGapStart
				}
			}

			adj, eq := runeMatch(p[i], c[j], fold)
			if !eq {
				continue
			}

			base := scoreMatch + adj
			if i == 0 {
				cur[j] = base + bonus[j]*bonusFirstCharMultiplier
				continue
			}

			best := gapBest
			if prev[j-1] > minScore && prev[j-1]+bonusConsecutive > best {
				best = prev[j-1] + bonusConsecutive
			}
			if best == minScore {
				continue
			}
			cur[j] = best + base + bonus[j]
		}
		prev, cur = cur, prev
	}

	result := minScore
	for _, v := range prev {
		if v > result {
			result = v
		}
	}
	if result == minScore {
		return 0, false
	}
	return result, true
}

func runeMatch(p, c rune, fold bool) (adj int, ok bool) {
	if p == c {
		return 0, true
	}
	if fold && unicode.ToLower(c) == p {
		return penaltyCaseMismatch, true
	}
	return 0, false
}

type runeClass int

const (
	classNonWord runeClass = iota
	classLower
	classUpper
	classDigit
)

func classOf(r rune) runeClass {
	switch {
	case unicode.IsLower(r):
		return classLower
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsLetter(r):
		return classLower
	default:
		return classNonWord
	}
}

func positionBonus(c []rune, j int) int {
	cur := classOf(c[j])
	if cur == classNonWord {
		return 0
	}
	if j == 0 {
		return bonusHead
	}
	prev := classOf(c[j-1])
	switch {
	case prev == classNonWord:
		return bonusBreak
	case prev == classLower && cur == classUpper:
		return bonusCamel
	case prev != classDigit && cur == classDigit:
		return bonusCamel
	default:
		return 0
	}
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
