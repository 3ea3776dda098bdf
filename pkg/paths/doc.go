// Package paths resolves the on-disk layout of a PathPilot install.
//
// PathPilot keeps one directory per installed version in the operator's
// home (for example ~/v2.9.2) and a ~/tmc symlink pointing at the active
// one. Every configuration file pathpirate touches is addressed relative
// to that version directory:
//
//   - configs/tormach_mill/tormach_mill_base.ini: machine parameters
//   - configs/tormach_mill/tormach_mill_mesa.hal: mill HAL netlist
//   - configs/common/operator_console_controls_{3,4}axis.hal: console HAL
//   - python/ui_common.py: UI slider handlers
//   - images/MAXVEL_100.jpg: slider label image
//   - mesa/: FPGA bitfiles
//   - bin/halshow, tcl/bin: halshow launcher and scripts
//
// The package also locates the bundle of reference files shipped with
// pathpirate and the XDG directories used for its own config and log.
//
// # Environment Variables
//
//   - PATHPIRATE_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/pathpirate)
package paths
