// Package pipeline runs records through a scene.Scene.
//
// Process handles one record in a fixed order: reset, strain check, setup,
// antigenic sites, clade/subclade, mutations, side image, top image,
// session. Table misses become notes on the Result; host failures abort the
// record with no rollback. RunBatch feeds records through Process one at a
// time against the same scene.
package pipeline
