package config

import "flag"

// RegisterFlags binds command line flags to cfg. The current values of cfg are the defaults,
// so flags override whatever Load produced.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	fs.IntVar(&cfg.RaysPerPixel, "rays", cfg.RaysPerPixel, "Rays per pixel")
	fs.IntVar(&cfg.WorkChunks, "chunks", cfg.WorkChunks, "Number of work chunks the image is split into")
	fs.IntVar(&cfg.MaxThreads, "threads", cfg.MaxThreads, "Maximum concurrent render workers")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum bounce depth")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = nondeterministic)")
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene to render")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output image path (.png, .tiff or .bmp)")

	fs.Var(vec3Value{&cfg.Camera.LookFrom}, "look-from", "Camera position as x,y,z")
	fs.Var(vec3Value{&cfg.Camera.LookAt}, "look-at", "Camera target as x,y,z")
	fs.Var(vec3Value{&cfg.Camera.Up}, "up", "Camera up vector as x,y,z")
	fs.Var(floatValue{&cfg.Camera.FOV}, "fov", "Horizontal field of view in degrees")
	fs.Var(floatValue{&cfg.Camera.Aperture}, "aperture", "Lens aperture (0 = pinhole)")
	fs.Var(floatValue{&cfg.Camera.FocusMultiplier}, "focus", "Focus distance as a fraction of the look-at distance")

	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", cfg.S3.Bucket, "Upload the final image to this S3 bucket")
	fs.StringVar(&cfg.S3.Key, "s3-key", cfg.S3.Key, "Object key for the S3 upload")
}
