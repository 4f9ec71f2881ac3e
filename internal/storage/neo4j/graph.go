// Package neo4j mirrors opportunities and their assessments into a graph:
// (:Opportunity)-[:AT]->(:Company) and
// (:Opportunity)-[:ASSESSED {score, band, profileVersion, outdated}]->(:Profile).
package neo4j

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/export"
	pkgneo4j "github.com/honeycarbs/jobfit/pkg/neo4j"
)

// Writer runs write transactions
type Writer interface {
	Write(ctx context.Context, queries ...pkgneo4j.Query) error
}

// GraphMirror keeps the graph in step with the tracker
type GraphMirror struct {
	client Writer
}

// NewGraphMirror creates a mirror over a Neo4j client
func NewGraphMirror(client Writer) *GraphMirror {
	return &GraphMirror{client: client}
}

const upsertOpportunities = `
	UNWIND $opps AS opp
	MERGE (o:Opportunity {id: opp.id})
	SET o.title = opp.title,
	    o.level = opp.level,
	    o.status = opp.status,
	    o.minSalary = opp.minSalary,
	    o.maxSalary = opp.maxSalary,
	    o.postingLink = opp.postingLink
	WITH o, opp
	MERGE (c:Company {name: opp.company})
	MERGE (o)-[:AT]->(c)
	WITH o, opp
	OPTIONAL MATCH (o)-[old:ASSESSED]->(:Profile)
	DELETE old
	WITH o, opp
	WHERE opp.assessed
	MERGE (p:Profile {id: $profileId})
	MERGE (o)-[r:ASSESSED]->(p)
	SET r.assessmentId = opp.assessmentId,
	    r.score = opp.score,
	    r.band = opp.band,
	    r.profileVersion = opp.profileVersion,
	    r.outdated = opp.outdated
`

const pruneOpportunities = `
	MATCH (o:Opportunity)
	WHERE NOT o.id IN $ids
	DETACH DELETE o
`

const pruneCompanies = `
	MATCH (c:Company)
	WHERE NOT (c)<-[:AT]-(:Opportunity)
	DELETE c
`

// Sync writes every record and removes opportunities that are no longer tracked
func (g *GraphMirror) Sync(ctx context.Context, profileID int64, records []export.Record) error {
	ids := make([]int64, 0, len(records))
	opps := make([]map[string]any, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.OpportunityID)
		opps = append(opps, opportunityParams(r))
	}

	err := g.client.Write(ctx,
		pkgneo4j.Query{Cypher: upsertOpportunities, Params: map[string]any{"opps": opps, "profileId": profileID}},
		pkgneo4j.Query{Cypher: pruneOpportunities, Params: map[string]any{"ids": ids}},
		pkgneo4j.Query{Cypher: pruneCompanies},
	)
	if err != nil {
		return fmt.Errorf("sync graph: %w", err)
	}
	return nil
}

func opportunityParams(r export.Record) map[string]any {
	m := map[string]any{
		"id":          r.OpportunityID,
		"title":       r.Title,
		"company":     r.Company,
		"level":       r.Level,
		"status":      string(r.Status),
		"minSalary":   intOrNil(r.MinSalary),
		"maxSalary":   intOrNil(r.MaxSalary),
		"postingLink": r.PostingLink,
		"assessed":    r.Assessed,
	}
	if r.Assessed {
		m["assessmentId"] = r.AssessmentID
		m["score"] = int64(r.FitScore)
		m["band"] = r.Band
		m["profileVersion"] = int64(r.ProfileVersion)
		m["outdated"] = r.Freshness == assessment.FreshnessOutdated
	}
	return m
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
