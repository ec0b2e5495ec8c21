// Package mongo delivers validated records to MongoDB using the v2 driver.
//
// New connects with retry and Healthcheck wraps the client for health
// endpoints. Sink writes one document per record with an ordered InsertMany;
// each document keeps the record's field order and gains "_run_id" and
// "_position" so a batch can be traced back to its pipeline run:
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	n, err := mongo.NewSink(db).Write(ctx, "approvals", runID, records)
package mongo
