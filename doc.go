// Package bluefox provides a Go client SDK for the Bluefox.email REST
// API: subscriber-list management, transactional and triggered email
// sending, and inbound webhook validation and dispatch.
//
// Basic usage:
//
//	client, err := bluefox.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add a subscriber to a list
//	sub, err := client.Subscribers.Add(ctx, listID, "Ada Lovelace", "ada@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Send a transactional email
//	_, err = client.Emails.SendTransactional(ctx, bluefox.SendTransactionalParams{
//	    To:              "ada@example.com",
//	    TransactionalID: "welcome",
//	    Data:            map[string]any{"name": sub.Name},
//	})
//
// All failures are returned as errors; expected failure classes carry a
// *Error with a stable Code and can be matched with errors.Is against
// the package sentinels:
//
//	if errors.Is(err, bluefox.ErrRateLimited) {
//	    // back off and try later
//	}
//
// Server errors and network errors are retried automatically with
// exponential backoff; everything else surfaces immediately.
package bluefox
