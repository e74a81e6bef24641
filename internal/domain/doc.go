// Package domain models the three dashboard views derived from public marine
// and biodiversity APIs for a single coordinate.
//
// # Data Sources
//
// Oceanographic data comes from the Open-Meteo Marine API
// (https://marine-api.open-meteo.com), requested as ten hourly series over one
// past day and one forecast day in UTC. Occurrence records come from OBIS
// (https://api.obis.org, the primary source feeding both the fisheries and the
// molecular views) and GBIF (https://api.gbif.org, a secondary source queried
// for bony fish only).
//
// # Coordinate Conventions
//
// Latitude is held in [-90, 90] and longitude in [-180, 180]. Fisheries data
// is frequently exchanged as (lon, lat), so a pair whose latitude is out of
// range while its longitude is in range is treated as swapped:
//
//	(200, 10)  →  swap  →  (10, 200)  →  clamp  →  (10, 180)
//
// Occurrence searches use a WKT bounding box of half-width 0.25° in lon/lat
// order, e.g. for (10, 20):
//
//	POLYGON((19.75 9.75, 20.25 9.75, 20.25 10.25, 19.75 10.25, 19.75 9.75))
//
// URLs carry coordinates as "lat" and "lon" query parameters with 6 decimals.
//
// # Missing Values
//
// Upstream payloads omit fields freely. Optional fields are pointers; nil
// means the source did not supply the value and it is rendered as [Placeholder].
// Values are never inferred.
//
// # Derived Metrics
//
// Molecular view (from up to 100 OBIS records):
//
//	taxa detected    unique scientific names
//	diversity index  min(taxa/100, 0.95), 2 decimals
//	invasive risk    "Moderate" when taxa > 50, else "Low"
//	top families     3 most frequent, ties in first-seen order
//	top genera       3 most frequent, ties in first-seen order
//
// Fisheries view (OBIS records of class Actinopterygii/Actinopteri plus GBIF
// fish records), with n the number of unique species across both sources:
//
//	catch index          clamp(2n + 20, 20, 95)
//	habitat suitability  min(40 + round(0.8n), 98)
//	advisory             favorable when n > 10, otherwise survey recommended
//	dominant species     first combined name, else first named raw record, else "Unknown"
//
// Detail tables keep at most [MaxTableRecords] raw records.
//
// # Mock Data
//
// [Mock] derives fallback values from a trigonometric hash of the coordinate,
// scaled into each metric's natural range. It is deterministic and returns the
// same summary types as live data.
package domain
