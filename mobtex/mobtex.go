/*
Package mobtex decodes bitmap assets and uploads them as GL textures through
a gles.Context.  Decoding sits behind the Loader interface so the bitmaps can
come from gomobile assets, memory or anything else.

Typically an application loads a cube map from six asset faces:

	faces := [6]string{"box0.png", "box1.png", "box2.png", "box3.png", "box4.png", "box5.png"}
	texture, err := mobtex.LoadCube(glctx, mobtex.AssetLoader{}, faces)
	if err != nil {
		log.Printf("cube map failed to load: %v", err)
	}

Every failure is a *ResourceError and leaves no texture object behind.
*/
package mobtex
