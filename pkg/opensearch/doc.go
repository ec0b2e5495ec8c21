// Package opensearch delivers validated records to an OpenSearch index.
//
// New builds a client from Config and checks the cluster with Healthcheck.
// Sink sends each batch as one _bulk request and reports how many documents
// were accepted. Documents get "_run_id" and "_position" fields and the id
// "<run id>-<position>".
//
//	client, err := opensearch.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	sink := opensearch.NewSink(client, opensearch.WithRefresh(cfg.Refresh))
//	n, err := sink.Write(ctx, "placements", runID, records)
//	if errors.Is(err, opensearch.ErrBulkRejected) {
//	    // n documents were indexed, the rest were refused
//	}
package opensearch
