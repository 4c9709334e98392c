// Package minbar embeds the minbar faceted search layer in a Go program.
//
// It runs the same services as the minbar-search HTTP server against a
// Typesense cluster, with optional Redis-backed popular-query statistics.
//
//	client, _ := minbar.New(ctx,
//	    minbar.WithTypesense("http://localhost:8108", apiKey),
//	    minbar.WithRedis("localhost:6379", ""),
//	)
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "fasting", &minbar.SearchOptions{
//	    ContentTypes: []string{"lecture", "fatwa"},
//	    Scholars:     []string{"Ibn Baz"},
//	})
//	for _, h := range res.Groups[minbar.MixedKey] {
//	    fmt.Println(h.ContentType, h.Title)
//	}
//
//	books, _ := client.Collection("books").Search(ctx, "", nil)
package minbar
