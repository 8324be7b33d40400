package taxonomy

import _ "embed"

// The default dataset ships inside the binary so the server can always start
// without an external data file.
//
//go:embed data/imagery_profiles.yaml
var defaultDataset []byte
