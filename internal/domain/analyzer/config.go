package analyzer

// Config controls the analyzer service.
type Config struct {
	// StorePhotos uploads analysed photos to ImageStorage when one is wired.
	StorePhotos bool
	// PhotoKeyPrefix namespaces stored photo objects.
	PhotoKeyPrefix string
}
