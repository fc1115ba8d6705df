package match

import (
	"sort"
	"strings"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/textnorm"
)

// Threshold is the minimum score a client needs to appear in search
// results. It is inclusive.
const Threshold = 40.0

// Candidate is a client record with its relevance score in [0, 100].
type Candidate struct {
	Record core.Record
	Score  float64
}

// Scorer rates one record against an already normalized query.
type Scorer func(rec core.Record, query string, queryWords []string) float64

// ScoreClient rates a client record against a normalized query:
//
//	100 exact name, 90 name contains query, 85 query contains name
//	95  exact company, 80 company contains query
//	75  email contains query
//	≤70 share of query words found in the name (only when below 70)
//	≤60 Similarity of name and query (only when below 50)
//
// The highest applicable value wins.
func ScoreClient(rec core.Record, query string, queryWords []string) float64 {
	name := textnorm.Normalize(rec.String("name"))
	company := textnorm.Normalize(rec.String("company"))
	email := textnorm.Normalize(rec.String("email"))

	var score float64
	switch {
	case name == query:
		score = 100
	case strings.Contains(name, query):
		score = 90
	case name != "" && strings.Contains(query, name):
		score = 85
	}

	switch {
	case company != "" && company == query:
		score = max(score, 95)
	case company != "" && strings.Contains(company, query):
		score = max(score, 80)
	}

	if email != "" && strings.Contains(email, query) {
		score = max(score, 75)
	}

	if score < 70 && len(queryWords) > 0 {
		nameWords := textnorm.Words(name)
		matches := 0
		for _, qw := range queryWords {
			for _, nw := range nameWords {
				if strings.Contains(nw, qw) || strings.Contains(qw, nw) || Similarity(nw, qw) > 0.7 {
					matches++
					break
				}
			}
		}
		if matches > 0 {
			score = max(score, float64(matches)/float64(len(queryWords))*70)
		}
	}

	if score < 50 {
		score = max(score, Similarity(name, query)*60)
	}

	return score
}

// Rank scores every client against term and returns those at or above
// Threshold, best first. Equal scores keep collection order.
func Rank(clients []core.Record, term string) []Candidate {
	return RankWith(clients, term, ScoreClient)
}

func RankWith(clients []core.Record, term string, score Scorer) []Candidate {
	query := textnorm.Normalize(term)
	words := textnorm.Words(query)

	res := make([]Candidate, 0)
	for _, c := range clients {
		s := score(c, query, words)
		if s >= Threshold {
			res = append(res, Candidate{Record: c, Score: s})
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Score > res[j].Score
	})
	return res
}

// Partial is the last-resort pass: clients whose name contains any word of
// term as a plain substring.
func Partial(clients []core.Record, term string) []core.Record {
	words := textnorm.Words(term)
	var res []core.Record
	for _, c := range clients {
		name := textnorm.Normalize(c.String("name"))
		for _, w := range words {
			if strings.Contains(name, w) {
				res = append(res, c)
				break
			}
		}
	}
	return res
}

// FindByName returns the first client whose name plausibly refers to term:
// equal, contained either way (names of 4+ characters only for the reverse
// direction), or sharing at least half of the term's words.
func FindByName(clients []core.Record, term string) (core.Record, bool) {
	search := textnorm.Normalize(term)
	if len([]rune(search)) < 2 {
		return nil, false
	}
	searchWords := textnorm.Words(search)

	for _, c := range clients {
		name := textnorm.Normalize(c.String("name"))
		if name == "" {
			continue
		}
		if name == search || strings.Contains(name, search) {
			return c, true
		}
		if strings.Contains(search, name) && len([]rune(name)) > 3 {
			return c, true
		}

		nameWords := textnorm.Words(name)
		if len(searchWords) == 0 || len(nameWords) == 0 {
			continue
		}
		matching := 0
		for _, sw := range searchWords {
			for _, nw := range nameWords {
				if strings.Contains(nw, sw) || strings.Contains(sw, nw) {
					matching++
					break
				}
			}
		}
		if matching >= (len(searchWords)+1)/2 {
			return c, true
		}
	}
	return nil, false
}
