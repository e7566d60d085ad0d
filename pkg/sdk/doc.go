// Package partdex embeds the partdex catalog search engine in a Go program
// without running the HTTP service.
//
// The client loads a newline-delimited JSON catalog of prosthetic parts from
// a file, a URL, a Redis key or any custom Source, and answers the same
// filtered search and facet queries as the /api/v1 endpoints.
//
//	client, err := partdex.New(ctx, partdex.WithFile("data/catalog.ndjson"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	items, _ := client.Search(ctx, partdex.Query{
//	    Platform:     "P06",
//	    GingivaMM:    partdex.Float(3),
//	    ConnectionMM: partdex.Float(4.1),
//	}, 20)
//	facets, _ := client.Facets(ctx, partdex.Query{Group: "Abutments"})
package partdex
