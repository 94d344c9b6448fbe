// Package dashboard embeds the music taste engine in a Go program without
// the HTTP API.
//
// The client opens the same SQLite catalog the server uses and optionally a
// Redis sample index for similar-track search:
//
//	client, _ := dashboard.Open(ctx,
//	    dashboard.WithSQLite("dashboard.db"),
//	    dashboard.WithRedisIndex("localhost:6379", "", ""),
//	)
//	defer client.Close()
//
//	match, found, _ := client.Recommend().Soulmate(ctx, 42)
//	tracks, _ := client.Recommend().SimilarTracks(ctx, "4uLU6hMCjMI75M1A2tKUQC",
//	    dashboard.SampleSize(5000), dashboard.ReturnN(20),
//	)
//	board, _ := client.Insights().Dashboard(ctx, 42)
package dashboard
