// Package viz renders scene frames as colored braille text.
//
//   - [Canvas]: braille pixel grid with a per-cell color
//   - [Projector]: look-at perspective projection onto the canvas
//   - [MeshCache]: per-shape line meshes, denser for solid materials
//   - [CanvasRenderer]: a scene.Renderer drawing into a Canvas
//   - [StatsPanel]: FPS, object and triangle readout with an FPS plot
//
// Sizes handed to the renderer are in sub-pixels: every terminal cell is
// two sub-pixels wide and four tall, which keeps them close to square.
package viz
