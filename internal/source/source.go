// Package source defines the fetcher contract every job board implements,
// plus the text and location helpers the scrape mappers share.
package source

import (
	"context"

	"jobradar-engine/internal/domain"
)

// Kind partitions sources into the two orchestration phases.
type Kind int

const (
	KindScraper Kind = iota
	KindAPI
)

// Source name identifiers used in queries and phase partitioning.
const (
	Dice           = "dice"
	HNHiring       = "hn_hiring"
	RemoteOK       = "remoteok"
	WeWorkRemotely = "weworkremotely"
	Adzuna         = "adzuna"
	AuthenticJobs  = "authentic_jobs"
	JSearch        = "jsearch"
	USAJobs        = "usajobs"
)

// Query is one unit of work for a fetcher: a search string with an
// optional location, produced by the query builder and consumed exactly
// once by the orchestrator.
type Query struct {
	Source   string
	Text     string
	Location string
}

// Fetcher is implemented once per upstream board. Fetch builds a
// source-specific request, delegates HTTP to the httpx collaborator and
// maps raw items to JobResults. A fetcher never errors on missing
// credentials or a closed rate gate; both are a graceful empty-list skip.
// Per-item parse failures drop the item, not the fetch.
type Fetcher interface {
	Name() string
	DisplayName() string
	Kind() Kind
	Fetch(ctx context.Context, q Query) ([]domain.JobResult, error)
}
