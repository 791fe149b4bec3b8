// Package buildsys runs Starlark configure scripts.
// A script declares its options at the top level and resolves them in a configure() function;
// the results are collected as an ordered summary that can be cached between runs.
//
// SYSTEM, CPU_FAMILY and HAS_KMS describe the target platform. OS and ARCH hold the GOOS and GOARCH
// of the machine running galconf and don't follow --system or --cpu-family, so scripts that pick
// drivers should look at SYSTEM and CPU_FAMILY.
package buildsys
