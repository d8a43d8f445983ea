package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/integrator"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`  // tmin along the unit-length primary ray
	FrontFace    bool                   `json:"frontFace"` // Whether the ray hit the side the normal faces
	Properties   map[string]interface{} `json:"properties"`
}

func colorArray(c core.RGBColor) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func colorHex(c core.RGBColor) string {
	r, g, b := c.To8Bit()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = colorArray(m.Albedo)
		properties["color"] = colorHex(m.Albedo.Sqrt())
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = colorArray(m.Albedo)
		properties["color"] = colorHex(m.Albedo.Sqrt())
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.Emissive:
		properties["emission"] = colorArray(m.Color)
		properties["color"] = colorHex(m.Color.Sqrt())
		return "emissive", properties

	default:
		// Any other material still reports what it emits
		emission := mat.Emission()
		if emission != core.Black() {
			properties["emission"] = colorArray(emission)
		}
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(object geometry.GeometricObject) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		return "plane", properties

	case *geometry.ThinDisc:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		properties["radius"] = geom.Radius
		return "thin_disc", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit    bool
	Ray    core.Ray
	Info   core.HitInfo
	Object geometry.GeometricObject
}

// inspectPixel casts the ray through the center of a pixel (no jitter) and
// returns the nearest object it hits
func inspectPixel(world *scene.World, camera *renderer.Camera, pixelX, pixelY int) InspectResult {
	ray := camera.GetCenterRay(pixelX, pixelY)

	hit, object, isHit := integrator.NearestHit(ray, world)
	if !isHit {
		return InspectResult{Hit: false, Ray: ray}
	}

	return InspectResult{
		Hit:    true,
		Ray:    ray,
		Info:   hit,
		Object: object,
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Create request object for parameter parsing
	inspectReq := &RenderRequest{}

	// Parse common scene parameters using shared function
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	factory, vp, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= vp.HRes || pixelY < 0 || pixelY >= vp.VRes {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	camera, err := renderer.NewCamera(s.config.Eye, s.config.ImagePlaneZ, vp)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := inspectPixel(factory(0), camera, pixelX, pixelY)

	// Convert to JSON response
	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false})
		return
	}

	// Extract detailed information
	materialType, materialProps := s.extractMaterialInfo(result.Object.Material())
	geometryType, geometryProps := s.extractGeometryInfo(result.Object)

	// Combine properties
	allProperties := make(map[string]interface{})
	allProperties["material"] = materialProps
	allProperties["geometry"] = geometryProps

	point := result.Info.Point()
	normal := result.Info.Normal()

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{point.X, point.Y, point.Z},
		Normal:       [3]float64{normal.X, normal.Y, normal.Z},
		Distance:     result.Info.TMin(),
		FrontFace:    normal.Dot(result.Ray.Direction) < 0,
		Properties:   allProperties,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
