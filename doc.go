// Package surveykit is the Composition Root for the Survey Workbench.
//
// It connects the core workbench logic (Domain Layer) with the
// infrastructure adapters (Persistence Layer) using the Hexagonal
// Architecture pattern.
//
// Philosophy:
//
// Surveykit is the coordinator's command line for participant data. It
// treats a directory of participant folders and a cumulative masterfile
// as the two halves of a study workflow: folders are generated from
// questionnaire templates, per-survey CSV exports are merged back into
// one masterfile row per participant.
//
// Features:
//
//   - **Folder Generation**: per-participant folders populated with numbered template copies.
//   - **Extraction Merging**: survey-prefixed field merge of every extract CSV into a flat record.
//   - **Masterfile Backends**: CSV, spreadsheet workbook, or SQLite, detected by extension.
//   - **Advisory Checks**: duplicate detection and data-completeness checks that never block the user.
//   - **Batch Processing**: strictly sequential multi-participant runs; one failure never aborts the rest.
//   - **Watch Mode**: extract automatically once a participant's folder turns complete.
//
// Usage:
//
//	// Open the source directory with functional options
//	svc, err := surveykit.New("./participants",
//		surveykit.WithMustExist(true),
//		surveykit.WithLogger(logger),
//	)
//
//	// Extract one participant into the masterfile
//	master, err := surveykit.OpenMasterfile("./master.csv")
//	defer master.Close()
//	rec, err := svc.Extract(ctx, master, "P001")
package surveykit
