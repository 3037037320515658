// Package lib provides a Go SDK to track job applications and build their
// status timelines programmatically, without shelling out to the hiretrack
// CLI or running the HTTP API.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	app, _ := client.Apply(ctx, lib.ApplyOpts{
//	    JobID:     "job-42",
//	    JobTitle:  "Backend engineer",
//	    Company:   "Acme",
//	    Applicant: "jane@example.com",
//	})
//	client.Move(ctx, app.ID, lib.StatusReviewing)
//
//	tl, _ := client.Timeline(ctx, app.ID, nil)
//	for _, s := range tl.Timeline.Steps {
//	    fmt.Println(s.Label, s.IsCompleted, s.IsCurrent)
//	}
//
// # Storage
//
// By default applications are stored in a SQLite database at
// ~/.hiretrack/hiretrack.db. Set [Config].InMemory to keep them in memory,
// useful for tests and short lived tools.
//
// # Flows
//
// Timelines are narrated using status flows. The built-in flows can be
// overridden or extended with [Config].Flows.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: The application does not exist.
//   - [ErrAlreadyExists]: An application with the same ID already exists.
//   - [ErrNotValid]: Invalid input or status transition (e.g. moving an accepted application).
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines.
package lib
