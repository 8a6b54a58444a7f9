// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/swell/server/buoyancy"
	"github.com/SoftbearStudios/swell/server/waves"
	"github.com/SoftbearStudios/swell/server/waves/noise"
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/go-gl/mathgl/mgl32"
	"image/png"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
)

// testClient records everything sent to it.
type testClient struct {
	ClientData
	updates   []*Update
	destroyed bool
}

func (client *testClient) Init()  {}
func (client *testClient) Close() {}

func (client *testClient) Send(out Outbound) {
	client.updates = append(client.updates, out.(*Update))
}

func (client *testClient) Destroy() {
	client.destroyed = true
}

func (client *testClient) Data() *ClientData {
	return &client.ClientData
}

func newTestHub(t testing.TB, names ...string) *Hub {
	t.Helper()

	transform := world.NewTransform(mgl32.Vec3{})
	transform.Scale = mgl32.Vec3{2, 1, 2}
	field, err := waves.New(waves.Options{
		Resolution: 8,
		Transform:  transform,
		Octaves: []waves.Octave{
			{TravelSpeed: world.Vec2f{X: 1, Y: 0.5}, Scale: world.Vec2f{X: 2, Y: 2}, Amplitude: 1},
		},
		Damping: world.Box{Center: mgl32.Vec3{-100, 0, -100}, Extent: mgl32.Vec3{1, 1, 1}},
		Noise:   noise.NewDefault(),
	})
	if err != nil {
		t.Fatal(err)
	}
	field.Update(0)

	var buoys []Buoy
	for i, name := range names {
		body, err := buoyancy.New(field, world.NewTransform(mgl32.Vec3{float32(4 + i), 1, 8}), buoyancy.Options{
			Anchors:   []mgl32.Vec3{{-0.5, 0, -0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}, {-0.5, 0, 0.5}},
			AirDrag:   buoyancy.DefaultAirDrag,
			WaterDrag: buoyancy.DefaultWaterDrag,
		})
		if err != nil {
			t.Fatal(err)
		}
		buoys = append(buoys, Buoy{Name: name, Body: body})
	}

	return NewHub(HubOptions{
		Field:   field,
		Bodies:  buoys,
		Gravity: mgl32.Vec3{0, -9.81, 0},
	})
}

func (h *Hub) addTestClient() *testClient {
	client := &testClient{}
	h.clients.Add(client)
	client.Hub = h
	return client
}

func TestNewHub_Names(t *testing.T) {
	h := newTestHub(t, "  buoy (one)  ", "", "crate")

	expected := []string{"buoy one", "buoy 2", "crate"}
	for i, buoy := range h.buoys {
		if buoy.Name != expected[i] {
			t.Errorf("expected name %q, got %q", expected[i], buoy.Name)
		}
	}

	if _, ok := h.cloud.(Offline); !ok {
		t.Errorf("expected offline cloud, got %v", h.cloud)
	}
}

func TestHub_Update(t *testing.T) {
	h := newTestHub(t, "buoy")
	watcher := h.addTestClient()
	subscriber := h.addTestClient()
	subscriber.Viewer.Surface = true

	h.Visual()
	h.Physics(2)
	h.Update()

	if len(watcher.updates) != 1 || len(subscriber.updates) != 1 {
		t.Fatalf("expected one update each, got %d and %d", len(watcher.updates), len(subscriber.updates))
	}

	w, s := watcher.updates[0], subscriber.updates[0]
	if w.Surface != nil {
		t.Error("watcher should not get the surface")
	}
	if s.Surface == nil || s.Surface.Resolution != 8 || len(s.Surface.Heights) != 81 {
		t.Fatalf("unexpected surface %+v", s.Surface)
	}
	if len(w.Bodies) != 1 || w.Bodies[0].Name != "buoy" {
		t.Fatalf("unexpected bodies %+v", w.Bodies)
	}
	if w.Bodies[0].Position != h.buoys[0].Rigid().Position {
		t.Errorf("expected position %v, got %v", h.buoys[0].Rigid().Position, w.Bodies[0].Position)
	}

	// The copy must not change with the field.
	before := append([]float32(nil), s.Surface.Heights...)
	h.field.Update(5)
	h.field.Update(10)
	for i := range before {
		if before[i] != s.Surface.Heights[i] {
			t.Fatal("surface update was not copied")
		}
	}
}

func TestHub_Physics(t *testing.T) {
	h := newTestHub(t, "buoy")
	start := h.buoys[0].Rigid().Position

	for i := 0; i < 10; i++ {
		h.Visual()
		h.Physics(1)
	}

	if h.buoys[0].Rigid().Position == start {
		t.Error("body did not move")
	}
	if len(h.funcBenches) == 0 {
		t.Error("expected function benchmarks")
	}
}

func TestHub_Inbound(t *testing.T) {
	h := newTestHub(t)
	client := h.addTestClient()

	focus := mgl32.Vec3{3, 0, 4}
	Focus{Position: focus}.Process(h, client, &client.Viewer)
	if h.field.Damping().Center != focus {
		t.Errorf("expected damping center %v, got %v", focus, h.field.Damping().Center)
	}
	if client.Viewer.Focus == nil || *client.Viewer.Focus != focus {
		t.Errorf("expected viewer focus %v", focus)
	}

	nan := mgl32.Vec3{3, 0, float32(math.NaN())}
	Focus{Position: nan}.Process(h, client, &client.Viewer)
	if h.field.Damping().Center != focus {
		t.Error("non finite focus should be ignored")
	}

	Subscribe{Surface: true}.Process(h, client, &client.Viewer)
	if !client.Viewer.Surface {
		t.Error("expected subscription")
	}
	Subscribe{}.Process(h, client, &client.Viewer)
	if client.Viewer.Surface {
		t.Error("expected unsubscription")
	}

	Trace{FPS: 60}.Process(h, client, &client.Viewer)
	if client.Viewer.FPS != 60 {
		t.Errorf("expected fps 60, got %f", client.Viewer.FPS)
	}
}

func TestHub_Status(t *testing.T) {
	h := newTestHub(t, "buoy")
	h.addTestClient()
	h.Status()

	recorder := httptest.NewRecorder()
	h.ServeIndex(recorder, httptest.NewRequest("GET", "/", nil))

	body := recorder.Body.String()
	for _, s := range []string{`"viewers":1`, `"name":"buoy"`, `"damping":[-100,0,-100]`} {
		if !strings.Contains(body, s) {
			t.Errorf("expected %s in %s", s, body)
		}
	}
	if contentType := recorder.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("unexpected content type %s", contentType)
	}
}

func TestHub_Surface(t *testing.T) {
	h := newTestHub(t)

	recorder := httptest.NewRecorder()
	h.ServeSurface(recorder, httptest.NewRequest("GET", "/surface.png", nil))
	if recorder.Code != 503 {
		t.Errorf("expected 503 before any snapshot, got %d", recorder.Code)
	}

	h.SnapshotSurface()

	recorder = httptest.NewRecorder()
	h.ServeSurface(recorder, httptest.NewRequest("GET", "/surface.png", nil))
	if recorder.Code != 200 || !strings.HasPrefix(recorder.Body.String(), "\x89PNG") {
		t.Fatalf("expected png, got %d %q", recorder.Code, recorder.Body.String())
	}

	img, err := png.Decode(recorder.Body)
	if err != nil {
		t.Fatal(err)
	}
	if size := img.Bounds().Size(); size.X != snapshotSize || size.Y != snapshotSize {
		t.Errorf("expected %dx%d snapshot, got %v", snapshotSize, snapshotSize, size)
	}
}

func TestHub_Debug(t *testing.T) {
	h := newTestHub(t, "buoy")
	h.Visual()
	h.Debug()

	for _, bench := range h.funcBenches {
		if bench.runs != 0 {
			t.Errorf("expected %s benchmark to be reset", bench.name)
		}
	}
}

func BenchmarkHub_Tick(b *testing.B) {
	h := newTestHub(b, "a", "b", "c", "d")
	for i := 0; i < 4; i++ {
		h.addTestClient().Viewer.Surface = i%2 == 0
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Visual()
		h.Physics(1)
		h.Update()

		for client := h.clients.First; client != nil; client = client.Data().Next {
			client.(*testClient).updates = nil
		}
	}
}
