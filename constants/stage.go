package constants

// Stage is the canonical pipeline stage for an exam extraction job.
type Stage string

// Stable values (store these exact strings in DB).
const (
	StageCreated         Stage = "created"
	StageDownloading     Stage = "downloading_images"
	StageProcessing      Stage = "processing_images"
	StageCallingCascade  Stage = "calling_model_cascade"
	StageParsingResponse Stage = "parsing_response"
	StageEnriching       Stage = "enriching"
	StageFinalizing      Stage = "finalizing"
	StageReady           Stage = "ready"
	StageError           Stage = "error"
)

// stageOrder gives each stage a monotonic ordinal. Error is terminal and
// reachable from any non-terminal stage, so it sits above everything.
var stageOrder = map[Stage]int{
	StageCreated:         0,
	StageDownloading:     1,
	StageProcessing:      2,
	StageCallingCascade:  3,
	StageParsingResponse: 4,
	StageEnriching:       5,
	StageFinalizing:      6,
	StageReady:           7,
	StageError:           8,
}

// stageFloor is the minimum progress percentage for each stage. Image
// processing advances proportionally inside the 5–75 window.
var stageFloor = map[Stage]int{
	StageCreated:         0,
	StageDownloading:     5,
	StageProcessing:      5,
	StageCallingCascade:  75,
	StageParsingResponse: 85,
	StageEnriching:       90,
	StageFinalizing:      95,
	StageReady:           100,
	StageError:           100,
}

// ImageProgressStart and ImageProgressEnd bound the progress window
// allocated to image resolution.
const (
	ImageProgressStart = 5
	ImageProgressEnd   = 75
)

// Ordinal returns the stage ordinal, or -1 for an unknown stage.
func (s Stage) Ordinal() int {
	if o, ok := stageOrder[s]; ok {
		return o
	}
	return -1
}

// Floor returns the percentage floor for the stage.
func (s Stage) Floor() int {
	return stageFloor[s]
}

// Terminal reports whether the stage ends a job.
func (s Stage) Terminal() bool {
	return s == StageReady || s == StageError
}

// AllStages lists the stable stage strings, for schema validation.
var AllStages = []string{
	string(StageCreated),
	string(StageDownloading),
	string(StageProcessing),
	string(StageCallingCascade),
	string(StageParsingResponse),
	string(StageEnriching),
	string(StageFinalizing),
	string(StageReady),
	string(StageError),
}
